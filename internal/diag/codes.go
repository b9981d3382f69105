package diag

// Stable diagnostic codes grouped by phase, following the taxonomy
// established by the teacher's internal/errors/codes.go (PAR###, MOD###,
// LDR### grouping) applied to the phases named in spec.md §7.
const (
	// Name resolution (SEMA### for general resolution, IMP### for imports).
	CodeUnresolvedType       = "SEMA001"
	CodeUnresolvedIdentifier = "SEMA002"
	CodeAmbiguousOverload    = "SEMA003"
	CodeNoOverloadMatches    = "SEMA004"
	CodeMissingNamespaceItem = "SEMA005"

	CodeCyclicImport        = "IMP001"
	CodeImportCollision     = "IMP002"
	CodeImportSelectorMiss  = "IMP003"
	CodeImportFileNotFound  = "IMP004"
	CodeImportExternFailed  = "IMP005"

	// Type checking (CONV### for conversions/casts, UNIFY### for unification).
	CodeUnificationFailure  = "UNIFY001"
	CodeOccursCheck         = "UNIFY002"
	CodeInvalidConversion   = "CONV001"
	CodeInvalidExplicitCast = "CONV002"

	// Structural checks (GIL###), raised by sema, gilgen and the GIL passes.
	CodeVoidReturnsValue  = "GIL001"
	CodeMissingReturn     = "GIL002"
	CodeDuplicateField    = "GIL003"
	CodeMissingField      = "GIL004"
	CodeInvalidLValue     = "GIL005"

	// Ownership (OWN###).
	CodeUninitializedLoad = "OWN001"
	CodeUninitializedDrop = "OWN002"
	CodeMaybeInitStore    = "OWN003"

	// Control flow (FLOW###).
	CodeUnreachableCode     = "FLOW001"
	CodeBreakOutsideLoop    = "FLOW002"
	CodeContinueOutsideLoop = "FLOW003"

	// Pipeline configuration.
	CodeUnknownPass = "CFG001"

	// CLI driver (CLI###).
	CodeParserUnavailable = "CLI001"
)
