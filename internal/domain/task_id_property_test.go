package domain

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genTaskID generates identifiers that satisfy the TaskID grammar:
// leading lowercase letter, lowercase letters, digits and single
// underscores, no trailing underscore, at most 100 characters.
func genTaskID() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		first := rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz")).Draw(t, "first")
		length := rapid.IntRange(0, 99).Draw(t, "length")

		var sb strings.Builder
		sb.WriteRune(first)

		lastWasUnderscore := false
		for i := 0; i < length; i++ {
			kind := rapid.IntRange(1, 10).Draw(t, fmt.Sprintf("kind_%d", i))
			switch {
			case kind <= 6:
				sb.WriteRune(rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz")).Draw(t, fmt.Sprintf("letter_%d", i)))
				lastWasUnderscore = false
			case kind <= 9:
				sb.WriteRune(rapid.RuneFrom([]rune("0123456789")).Draw(t, fmt.Sprintf("digit_%d", i)))
				lastWasUnderscore = false
			default:
				if !lastWasUnderscore && i < length-1 {
					sb.WriteRune('_')
					lastWasUnderscore = true
				} else {
					sb.WriteRune(rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz")).Draw(t, fmt.Sprintf("letter_alt_%d", i)))
					lastWasUnderscore = false
				}
			}
		}
		return sb.String()
	})
}

func TestTaskIDValidIDsAlwaysValidate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := genTaskID().Draw(t, "id")

		id, err := NewTaskID(value)
		if err != nil {
			t.Fatalf("generated ID %q rejected: %v", value, err)
		}
		if id.String() != value {
			t.Fatalf("String() = %q, want %q", id.String(), value)
		}
	})
}

func TestTaskIDTooLongAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(101, 200).Draw(t, "length")
		value := "a" + strings.Repeat("b", length-1)

		if _, err := NewTaskID(value); err == nil {
			t.Fatalf("%d-character ID should fail validation", length)
		}
	})
}

func TestTaskIDVerificationDerivationStaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := genTaskID().Draw(t, "id")
		id, err := NewTaskID(value)
		if err != nil {
			t.Fatalf("generated ID %q rejected: %v", value, err)
		}

		ver := id.VerificationID()
		if !ver.IsVerification() {
			t.Fatalf("VerificationID(%q) = %q is not a verification ID", id, ver)
		}
		if len(ver.String()) <= maxTaskIDLength {
			if err := ver.Validate(); err != nil {
				t.Fatalf("derived ID %q invalid: %v", ver, err)
			}
		}

		// Deriving again must change nothing.
		if again := ver.VerificationID(); again != ver {
			t.Fatalf("VerificationID is not idempotent: %q -> %q", ver, again)
		}
	})
}

func TestTaskIDPairingInverts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := genTaskID().Draw(t, "base")
		impl := TaskID("impl_" + base)
		ver := impl.VerificationID()

		if ver != TaskID("test_"+base) {
			t.Fatalf("VerificationID(%q) = %q, want test_%s", impl, ver, base)
		}

		candidates := ver.ImplementationCandidates()
		if len(candidates) != 2 {
			t.Fatalf("candidates = %v, want two entries", candidates)
		}
		if candidates[0] != impl {
			t.Fatalf("first candidate = %q, want %q", candidates[0], impl)
		}
		if candidates[1] != TaskID(base) {
			t.Fatalf("second candidate = %q, want %q", candidates[1], base)
		}
	})
}
