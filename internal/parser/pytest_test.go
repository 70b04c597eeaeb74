package parser

import (
	"regexp"
	"testing"

	"apv/internal/domain"
)

const cleanOutput = `============================= test session starts ==============================
collected 5 items

tests/core/test_imports.py .....                                         [100%]

============================== 5 passed in 0.51s ===============================
`

const moduleMissingOutput = `============================= test session starts ==============================
collected 0 items / 1 error

==================================== ERRORS ====================================
______________ ERROR collecting tests/core/test_imports.py _______________
ImportError while importing test module '/workspace/repo/tests/core/test_imports.py'.
E   ModuleNotFoundError: No module named 'foo'
=========================== short test summary info ============================
ERROR tests/core/test_imports.py
=============================== 1 error in 0.23s ===============================
`

const assertionFailureOutput = `============================= test session starts ==============================
collected 5 items

tests/core/test_imports.py ....F                                         [100%]

=================================== FAILURES ===================================
____________________ TestImports.test_import_status ____________________
E       AssertionError: assert 1 == 2
=========================== short test summary info ============================
FAILED tests/core/test_imports.py::TestImports::test_import_status - AssertionError: assert 1 == 2
========================= 1 failed, 4 passed in 1.02s ==========================
`

const mixedOutput = `==================================== ERRORS ====================================
E   ModuleNotFoundError: No module named 'foo'
=========================== short test summary info ============================
FAILED tests/core/test_api.py::test_status - AssertionError: wrong status
ERROR tests/core/test_imports.py - ModuleNotFoundError: No module named 'foo'
========================== 1 failed, 1 error in 0.40s ==========================
`

const duplicateModulesOutput = `==================================== ERRORS ====================================
E   ModuleNotFoundError: No module named 'foo'
E   ModuleNotFoundError: No module named 'foo'
E   ModuleNotFoundError: No module named 'bar'
=========================== short test summary info ============================
ERROR tests/a_test.py
ERROR tests/b_test.py
ERROR tests/c_test.py
=============================== 3 errors in 0.31s ==============================
`

const internalErrorOutput = `============================= test session starts ==============================
INTERNALERROR> Traceback (most recent call last):
INTERNALERROR>   File "/usr/lib/python3/site-packages/_pytest/main.py", line 270, in wrap_session
INTERNALERROR> KeyError: 'node'
`

func TestPytestParser_Parse(t *testing.T) {
	p := NewPytestParser()

	t.Run("clean run", func(t *testing.T) {
		outcome := p.Parse(cleanOutput, "", 0)
		if !outcome.Clean() {
			t.Errorf("expected clean outcome, got %+v", outcome)
		}
		if outcome.Passed != 5 {
			t.Errorf("expected 5 passed, got %d", outcome.Passed)
		}
		if !outcome.SummaryFound {
			t.Error("expected summary line to be found")
		}
	})

	t.Run("missing module", func(t *testing.T) {
		outcome := p.Parse(moduleMissingOutput, "", 2)
		if len(outcome.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d: %+v", len(outcome.Entries), outcome.Entries)
		}
		entry := outcome.Entries[0]
		if entry.Classification != domain.ClassModuleMissing {
			t.Errorf("expected module-missing, got %s", entry.Classification)
		}
		if entry.Module != "foo" {
			t.Errorf("expected module foo, got %q", entry.Module)
		}
		if outcome.Errors != 1 {
			t.Errorf("expected 1 error from summary, got %d", outcome.Errors)
		}
		if outcome.HasBlockingError() {
			t.Error("a pure module-missing outcome must not be blocking")
		}
	})

	t.Run("assertion failure", func(t *testing.T) {
		outcome := p.Parse(assertionFailureOutput, "", 1)
		if outcome.Passed != 4 || outcome.Failed != 1 {
			t.Errorf("expected 4 passed / 1 failed, got %d / %d", outcome.Passed, outcome.Failed)
		}
		if len(outcome.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(outcome.Entries))
		}
		if outcome.Entries[0].Classification != domain.ClassTestFailure {
			t.Errorf("expected test-failure, got %s", outcome.Entries[0].Classification)
		}
		if !outcome.HasBlockingError() {
			t.Error("assertion failure must be blocking")
		}
	})

	t.Run("module pattern always wins over ERROR prefix", func(t *testing.T) {
		outcome := p.Parse(mixedOutput, "", 1)
		var moduleEntries, failureEntries int
		for _, e := range outcome.Entries {
			switch e.Classification {
			case domain.ClassModuleMissing:
				moduleEntries++
			case domain.ClassTestFailure:
				failureEntries++
			}
		}
		if moduleEntries != 1 {
			t.Errorf("expected 1 module-missing entry, got %d", moduleEntries)
		}
		if failureEntries != 1 {
			t.Errorf("expected 1 test-failure entry, got %d", failureEntries)
		}
		if got := outcome.MissingModules(); len(got) != 1 || got[0] != "foo" {
			t.Errorf("expected missing modules [foo], got %v", got)
		}
	})

	t.Run("deduplicates modules in first-observed order", func(t *testing.T) {
		outcome := p.Parse(duplicateModulesOutput, "", 2)
		got := outcome.MissingModules()
		if len(got) != 2 || got[0] != "foo" || got[1] != "bar" {
			t.Errorf("expected [foo bar], got %v", got)
		}
		if outcome.Errors != 3 {
			t.Errorf("expected 3 errors from summary, got %d", outcome.Errors)
		}
	})

	t.Run("crash without summary synthesizes counts", func(t *testing.T) {
		outcome := p.Parse(internalErrorOutput, "", 3)
		if outcome.SummaryFound {
			t.Error("expected no summary line")
		}
		if len(outcome.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(outcome.Entries))
		}
		if outcome.Entries[0].Classification != domain.ClassOther {
			t.Errorf("expected other, got %s", outcome.Entries[0].Classification)
		}
		if outcome.Errors != 1 {
			t.Errorf("expected 1 synthesized error, got %d", outcome.Errors)
		}
		if outcome.Clean() {
			t.Error("non-zero exit without summary must not be clean")
		}
	})

	t.Run("determinism", func(t *testing.T) {
		a := p.Parse(duplicateModulesOutput, "", 2)
		b := p.Parse(duplicateModulesOutput, "", 2)
		if len(a.Entries) != len(b.Entries) {
			t.Fatalf("entry counts differ: %d vs %d", len(a.Entries), len(b.Entries))
		}
		for i := range a.Entries {
			if a.Entries[i] != b.Entries[i] {
				t.Errorf("entry %d differs: %+v vs %+v", i, a.Entries[i], b.Entries[i])
			}
		}
	})

	t.Run("custom signature set", func(t *testing.T) {
		custom := NewPytestParser(Signature{
			Name:    "npm-missing",
			Pattern: regexp.MustCompile(`Cannot find module '([^']+)'`),
		})
		outcome := custom.Parse("Error: Cannot find module 'left-pad'", "", 1)
		got := outcome.MissingModules()
		if len(got) != 1 || got[0] != "left-pad" {
			t.Errorf("expected [left-pad], got %v", got)
		}
	})
}

func TestPytestParser_StderrScanned(t *testing.T) {
	p := NewPytestParser()
	outcome := p.Parse("", "E   ModuleNotFoundError: No module named 'baz'\n", 1)
	got := outcome.MissingModules()
	if len(got) != 1 || got[0] != "baz" {
		t.Errorf("expected [baz] from stderr, got %v", got)
	}
}
