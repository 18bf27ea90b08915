package maintenance

// Known maintenance types. This is a catalog, not a closed enum: the ledger
// accepts and passes through values outside this list.
const (
	TypeCameraReset      = "CAMERA_RESET"
	TypeClockAdjustment  = "CLOCK_ADJUSTMENT"
	TypeCableReplacement = "CABLE_REPLACEMENT"
	TypeImageRetrieval   = "IMAGE_RETRIEVAL"
	TypeLensCleaning     = "LENS_CLEANING"
	TypeFirmwareUpdate   = "FIRMWARE_UPDATE"
	TypeRepositioning    = "REPOSITIONING"
	TypeFunctionTest     = "FUNCTION_TEST"
	TypeOther            = "OTHER"
)

// DefaultTechnician is recorded when no authenticated user is acting.
const DefaultTechnician = "system"

// Types lists the catalog in presentation order.
func Types() []string {
	return []string{
		TypeCameraReset,
		TypeClockAdjustment,
		TypeCableReplacement,
		TypeImageRetrieval,
		TypeLensCleaning,
		TypeFirmwareUpdate,
		TypeRepositioning,
		TypeFunctionTest,
		TypeOther,
	}
}
