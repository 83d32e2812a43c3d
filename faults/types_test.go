package faults

import (
	"errors"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ConfigurationError, "resource group is required", nil)
	if !IsCategory(err, ConfigurationError) {
		t.Fatalf("expected configuration category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	plain := errors.New("wrap: " + err.Error())
	if IsCategory(plain, ConfigurationError) {
		t.Fatalf("plain string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ConfigurationError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestWrapRemoteKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("status 503")
	err := WrapRemote(cause, "deleting %q", "my-app")
	if !IsCategory(err, RemoteOperationError) {
		t.Fatalf("expected remote operation category")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to survive wrapping")
	}
	if got := err.Error(); got != `deleting "my-app": status 503` {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTypedErrorMessageFallbacks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  *TypedError
		want string
	}{
		{
			name: "message only",
			err:  NewTypedError(InvariantViolation, "name must not be blank", nil),
			want: "name must not be blank",
		},
		{
			name: "cause only",
			err:  NewTypedError(RemoteOperationError, "", errors.New("boom")),
			want: "boom",
		},
		{
			name: "category fallback",
			err:  NewTypedError(NotFoundError, "", nil),
			want: "NotFoundError",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.err.Error(); got != testCase.want {
				t.Fatalf("Error() = %q, want %q", got, testCase.want)
			}
		})
	}
}
