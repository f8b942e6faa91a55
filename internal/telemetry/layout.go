// internal/telemetry/layout.go
package telemetry

// Rover status block layout constants.
// These values define the wire layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerRover is the fixed number of logical slots per rover.
const SlotsPerRover = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the rover health state.
const SlotHealthCode = 0

// SlotLogicState holds the main logic state.
const SlotLogicState = 1

// SlotLastCommand holds the last command byte retrieved.
const SlotLastCommand = 2

// SlotRPMx100 holds the latest wheel speed in hundredths of RPM.
const SlotRPMx100 = 3

// SlotAvgRPMx100 holds the windowed average wheel speed in hundredths of RPM.
const SlotAvgRPMx100 = 4

// SlotMorseState holds the morse elements machine state.
const SlotMorseState = 5

// SlotUptimeSec holds the controller uptime in seconds, saturating.
const SlotUptimeSec = 6

// liveSlots is the span of slots refreshed incrementally.
const liveSlots = 7

// ---- RESERVED RANGE ----

// Slots 7-10 are reserved for future use.
const SlotReservedStart = 7
const SlotReservedEnd = 10

// ---- ROVER NAME ----

// SlotNameStart is the first slot used for the rover name.
// The name is always placed at the END of the status block.
const SlotNameStart = 11

// SlotNameSlots is the number of slots reserved for the rover name.
const SlotNameSlots = 8

// SlotNameEnd is the last slot used for the rover name (inclusive).
const SlotNameEnd = SlotNameStart + SlotNameSlots - 1

// ---- LIMITS ----

// NameMaxChars is the maximum number of ASCII characters stored for the rover name.
const NameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy command link.
const HealthOK uint16 = 1

// HealthError represents a command link that is not delivering bytes.
const HealthError uint16 = 2

// HealthDisabled represents a rover running without a command link.
const HealthDisabled uint16 = 3
