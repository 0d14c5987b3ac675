package kerr

// Code is a stable small integer identifying a specific failure kind.
// Codes are grouped into 100-wide bands per Category (see the table in
// the project's error-handling design) so a code's numeric range alone
// identifies its category.
type Code int

const (
	// General errors (1-99).
	CodeUnknownError Code = iota + 1
	CodeInvalidArgument
	CodeOutOfHostMemory
	CodeFileNotFound
	CodePermissionDenied
	CodeOperationCancelled
)

const (
	// Backend errors (100-199).
	CodeBackendNotAvailable Code = iota + 100
	CodeBackendInitFailed
	CodeDeviceNotFound
	CodeDeviceBusy
	CodeKernelLoadFailed
	CodeKernelExecutionFailed
	CodeGPUOutOfMemory
	CodeBufferCreationFailed
	CodeTextureCreationFailed
)

const (
	// Shader-compile errors (200-299).
	CodeCompilerNotFound Code = iota + 200
	CodeCompileFailed
	CodeSyntaxError
	CodeLinkError
	CodeBytecodeGenerationFailed
	CodeIntermediateFileError
)

const (
	// Imaging errors (300-399). Out of core scope (spec.md §1); kept for
	// taxonomy completeness since external imaging collaborators report
	// through this same Error type.
	CodeImageLoadFailed Code = iota + 300
	CodeImageSaveFailed
	CodeUnsupportedFormat
	CodeColorConversionFailed
	CodeImageResizeFailed
	CodeCorruptedImageData
)

const (
	// System errors (400-499).
	CodeSystemInterrogationFailed Code = iota + 400
	CodeRuntimeDetectionFailed
	CodeDeviceEnumerationFailed
	CodeVersionDetectionFailed
	CodeLibraryLoadFailed
)

const (
	// Test errors (500-599). Out of core scope; the external test
	// orchestration harness reports through this Error type as well.
	CodeTestSetupFailed Code = iota + 500
	CodeTestExecutionFailed
	CodeTestValidationFailed
	CodeTestTimeout
	CodeReferenceDataMissing
	CodeStatisticalAnalysisFailed
)

// suggestions is the policy table mapping a code to a suggested
// resolution, keyed exactly on the examples in the error-handling design.
var suggestions = map[Code]string{
	CodeFileNotFound:        "Verify file path is correct and file exists",
	CodeLibraryLoadFailed:   "Verify the runtime is installed and its library is on the system search path",
	CodeBackendNotAvailable: "Install the required GPU driver or select a different backend",
	CodeDeviceNotFound:      "Check the device index against the number of devices reported by enumeration",
	CodeGPUOutOfMemory:      "Reduce buffer/texture sizes or release unused GPU resources",
	CodeCompilerNotFound:    "Install the shader compiler toolchain or add it to the executable search path",
	CodeInvalidArgument:     "Check the argument against the operation's documented constraints",
}
