// Package source provides built-in roster source implementations.
//
// Roster sources turn files or in-memory data into validated types.Roster
// values keyed by group identifier. The package includes:
//
//   - Static: Fixed set of rosters held in memory
//   - CSV: Delimited text file with a header row
//   - XLSX: Spreadsheet, one row per individual
//   - YAML: Typed list of rosters
//
// Tabular sources (CSV, XLSX) match header cells after normalization (accents
// stripped, lowercased, quotes and guillemets removed, whitespace collapsed),
// so "« Chef »" and "chef" name the same column. Recognized columns:
//
//   - Groupe: group identifier (required; rows without one are skipped)
//   - Nom: surname (optional; when absent the last word of Prénom is used)
//   - Prénom: given name, or full name when Nom is absent
//   - Avantage compté: advantage (absent or unparsable means 0)
//   - « chef » or chef: leader flag ("1", "true", "oui", "yes", "y")
//   - À séparer: polarity (integer; empty or "-" means none)
//
// Custom sources can be implemented by satisfying the types.RosterSource interface.
package source
