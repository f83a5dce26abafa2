package catalog

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// rowContext carries the position of the row being parsed into errors.
// The zero value is used for slot codes that come from users.
type rowContext struct {
	line int
	row  string
}

func (c rowContext) metadata(extra map[string]string) map[string]string {
	meta := map[string]string{}
	if c.line > 0 {
		meta["Line"] = strconv.Itoa(c.line)
		meta["Row"] = c.row
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}

func (c rowContext) errorf(code apperrors.Code, extra map[string]string, format string, args ...any) *apperrors.Error {
	msg := fmt.Sprintf(format, args...)
	if c.line > 0 {
		msg = fmt.Sprintf("line %d: %s in %q", c.line, msg, c.row)
	}
	return apperrors.WithMetadata(code, msg, c.metadata(extra))
}

func (c rowContext) malformed(reason string) *apperrors.Error {
	return c.errorf(apperrors.CodeCatalogRowMalformed, nil, "%s", reason)
}

func (c rowContext) fieldError(code apperrors.Code, field, value string, cause error) *apperrors.Error {
	err := c.errorf(code, map[string]string{"Field": field, "Value": value}, "field %q: %v", field, cause)
	err.Cause = cause
	return err
}

func (c rowContext) slotError(code, reason string) *apperrors.Error {
	return c.errorf(apperrors.CodeCatalogInvalidSlotCode, map[string]string{"Value": code}, "slot %q: %s", code, reason)
}

func (c rowContext) levelNotAllowed(code string) *apperrors.Error {
	return c.errorf(apperrors.CodeCatalogLevelNotAllowed, map[string]string{"Value": code}, "slot %q: commander and special slots take no level", code)
}

func (c rowContext) levelMissing(code string) *apperrors.Error {
	return c.errorf(apperrors.CodeCatalogLevelMissing, map[string]string{"Value": code}, "slot %q: level required", code)
}

func (c rowContext) monsterError(code apperrors.Code, name, value, reason string) *apperrors.Error {
	return c.errorf(code, map[string]string{"Name": name, "Value": value}, "monster %q: %s", name, reason)
}

func specialMonsterError(kind game.SpecialKind, monster string) *apperrors.Error {
	name := kind.Name(game.LanguageEN)
	return apperrors.WithMetadata(
		apperrors.CodeCatalogSpecialMonsterUnset,
		fmt.Sprintf("special %q: unknown monster %q", name, monster),
		map[string]string{"Name": name, "Value": monster},
	)
}
