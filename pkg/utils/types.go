package utils

// Constants
const (
	CLOCK_LAYOUT     = "15:04"
	PNR_LENGTH       = 6
	PNR_ALPHABET     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DEFAULT_COUNTRY  = "371"
	MINUTES_PER_DAY  = 24 * 60
	EMPLOYEE_ID_BASE = 1000000
)
