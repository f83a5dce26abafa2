// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog grammar errors
	CodeCatalogRowMalformed        Code = "CATALOG_ROW_MALFORMED"
	CodeCatalogUnknownExpansion    Code = "CATALOG_UNKNOWN_EXPANSION"
	CodeCatalogUnknownColor        Code = "CATALOG_UNKNOWN_COLOR"
	CodeCatalogDuplicateMonster    Code = "CATALOG_DUPLICATE_MONSTER"
	CodeCatalogUnknownMonster      Code = "CATALOG_UNKNOWN_MONSTER"
	CodeCatalogRepresentedBy       Code = "CATALOG_REPRESENTED_BY_INVALID"
	CodeCatalogInvalidChapter      Code = "CATALOG_INVALID_CHAPTER"
	CodeCatalogInvalidSlotCode     Code = "CATALOG_INVALID_SLOT_CODE"
	CodeCatalogSlotOrder           Code = "CATALOG_SLOT_ORDER"
	CodeCatalogLevelNotAllowed     Code = "CATALOG_LEVEL_NOT_ALLOWED"
	CodeCatalogLevelMissing        Code = "CATALOG_LEVEL_MISSING"
	CodeCatalogUnknownSpecial      Code = "CATALOG_UNKNOWN_SPECIAL"
	CodeCatalogColorMismatch       Code = "CATALOG_COLOR_MISMATCH"
	CodeCatalogSpecialWithoutName  Code = "CATALOG_SPECIAL_WITHOUT_MONSTER"
	CodeCatalogSetupOrder          Code = "CATALOG_SETUP_ORDER"
	CodeCatalogSpecialMonsterUnset Code = "CATALOG_SPECIAL_MONSTER_MISSING"

	// Assignment errors
	CodeAssignmentImpossible Code = "ASSIGNMENT_IMPOSSIBLE"

	// Selection errors
	CodeSlotIndexOutOfRange Code = "SLOT_INDEX_OUT_OF_RANGE"
	CodeSlotInvalid         Code = "SLOT_INVALID"
	CodePresetNotFound      Code = "PRESET_NOT_FOUND"

	// Settings errors
	CodeSettingsInvalidPlayers  Code = "SETTINGS_INVALID_PLAYERS"
	CodeSettingsInvalidLanguage Code = "SETTINGS_INVALID_LANGUAGE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Codes lists every code with a localized message.
func Codes() []Code {
	return []Code{
		CodeCatalogRowMalformed,
		CodeCatalogUnknownExpansion,
		CodeCatalogUnknownColor,
		CodeCatalogDuplicateMonster,
		CodeCatalogUnknownMonster,
		CodeCatalogRepresentedBy,
		CodeCatalogInvalidChapter,
		CodeCatalogInvalidSlotCode,
		CodeCatalogSlotOrder,
		CodeCatalogLevelNotAllowed,
		CodeCatalogLevelMissing,
		CodeCatalogUnknownSpecial,
		CodeCatalogColorMismatch,
		CodeCatalogSpecialWithoutName,
		CodeCatalogSetupOrder,
		CodeCatalogSpecialMonsterUnset,
		CodeAssignmentImpossible,
		CodeSlotIndexOutOfRange,
		CodeSlotInvalid,
		CodePresetNotFound,
		CodeSettingsInvalidPlayers,
		CodeSettingsInvalidLanguage,
		CodeNotFound,
	}
}

// Class groups codes by how callers should react to them.
type Class int

const (
	// ClassInternal marks programming or data errors.
	ClassInternal Class = iota
	// ClassInvalidArgument marks rejected user input.
	ClassInvalidArgument
	// ClassFailedPrecondition marks requests the current state cannot satisfy.
	ClassFailedPrecondition
	// ClassNotFound marks missing records.
	ClassNotFound
)

// Class maps a code to its class.
func (c Code) Class() Class {
	switch c {
	case CodeSlotIndexOutOfRange,
		CodeSlotInvalid,
		CodeSettingsInvalidPlayers,
		CodeSettingsInvalidLanguage:
		return ClassInvalidArgument

	case CodeAssignmentImpossible:
		return ClassFailedPrecondition

	case CodeNotFound,
		CodePresetNotFound:
		return ClassNotFound

	default:
		return ClassInternal
	}
}
