package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/classwork/internal/ids"
)

// UID is the 64-bit content-derived identifier of an assignment.
type UID uint64

// uidFieldsVersion tags the field tuple so a future change to the hashed
// fields can never collide with existing identities.
const uidFieldsVersion = "assignment/v1"

// DeriveUID computes the identity of an assignment from its due instant and
// name. The due time is normalized to UTC, so the same instant written with
// different offsets maps to the same UID.
func DeriveUID(a Assignment) UID {
	due := a.Due.UTC().Format(time.RFC3339Nano)
	return UID(ids.Digest64(uidFieldsVersion, due, a.Name))
}

// String renders the UID as 16 lowercase hex digits.
func (u UID) String() string {
	return ids.FormatHex(uint64(u))
}

// MarshalText implements encoding.TextMarshaler.
func (u UID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UID) UnmarshalText(text []byte) error {
	parsed, err := ParseUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUID parses a full hex UID.
func ParseUID(value string) (UID, error) {
	value = strings.TrimSpace(value)
	if len(value) != ids.HexLength {
		return 0, fmt.Errorf("%w: %q must be %d hex digits", ErrInvalidUID, value, ids.HexLength)
	}
	parsed, err := strconv.ParseUint(value, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUID, value)
	}
	return UID(parsed), nil
}
