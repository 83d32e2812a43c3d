package cli

import (
	"errors"
	"testing"

	"github.com/armkit/armkit/faults"
)

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: 1},
		{name: "configuration", err: faults.Configurationf("bad flag"), want: 2},
		{name: "not found", err: faults.NewTypedError(faults.NotFoundError, "gone", nil), want: 3},
		{name: "remote", err: faults.WrapRemote(errors.New("503"), "listing"), want: 4},
		{name: "invariant", err: faults.Invariantf("broken"), want: 5},
		{name: "wrapped remote", err: errors.Join(errors.New("context"), faults.WrapRemote(nil, "listing")), want: 4},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeForError(testCase.err); got != testCase.want {
				t.Fatalf("ExitCodeForError(%v) = %d, want %d", testCase.err, got, testCase.want)
			}
		})
	}
}
