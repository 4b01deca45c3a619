package builtin

// Clock-time constants used to derive policy durations. The runtime clock is
// denominated in whole seconds, so these are exact.
const SecondsInHour = 3600
const SecondsInDay = 86400
const SecondsInYear = 31556925
