package db

// Test-only aliases for unexported helpers exercised by the external db_test package.
var (
	EncodeServices = encodeServices
	DecodeServices = decodeServices
)
