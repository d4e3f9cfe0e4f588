// Package logging configures zerolog loggers and carries them through context.
//
// A logger is built from Config (level, console or JSON format, stderr or file
// output). Components derive child loggers with ComponentLogger so every event
// carries a "component" field, and commands attach a ULID trace ID to the
// context so related events can be correlated.
package logging
