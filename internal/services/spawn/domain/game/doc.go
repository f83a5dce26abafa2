// Package game defines the closed vocabularies of the board game: expansions,
// monster colors, difficulty tiers, special units, player numbers and the
// languages names are shown in.
//
// Localized names resolve through the platform i18n bundle. Helpers that have
// no meaning for a value (the name of the Special color, for instance) panic
// with *InvalidOperandError; those calls are programming errors.
package game
