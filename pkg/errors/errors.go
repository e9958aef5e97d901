package errors

// Error message constants for the py-imports-group application
const (
	// Statement parsing errors
	ErrMsgNotAnImport          = "not an import statement"
	ErrMsgMalformedFromImport  = "malformed from-import"
	ErrMsgInvalidAlias         = "invalid alias"
	ErrMsgInvalidModule        = "invalid module path"
	ErrMsgMissingImportKeyword = "missing 'import' keyword"
	ErrMsgNoImportedNames      = "no names imported"
	ErrMsgEmptyNameSlot        = "empty name in import list"
	ErrMsgUnbalancedParens     = "unbalanced parentheses in import list"
	ErrMsgInvalidName          = "invalid imported name"
	ErrMsgAliasNotIdentifier   = "'as' must be followed by a single identifier"
	ErrMsgStarAlias            = "wildcard import cannot be aliased"
	ErrMsgMultipleModules      = "multiple modules in one statement"

	// Configuration errors
	ErrMsgInvalidLocalPattern  = "invalid local module pattern"
	ErrMsgFailedToReadConfig   = "failed to read config"
	ErrMsgFailedToDecodeConfig = "failed to decode config"

	// Input errors
	ErrMsgFailedToOpenInput   = "failed to open input"
	ErrMsgFailedToReadInput   = "failed to read input"
	ErrMsgStatementsFailed    = "%d statements failed to parse"
	ErrMsgFailedToGetWorkDir  = "failed to get current working directory"
	ErrMsgFailedToLoadProject = "failed to load project settings"

	// Info/warning messages
	WarnMsgAliasConflict      = "alias conflict, keeping the later alias"
	InfoMsgParseFailure       = "%s:%d: %v"
	InfoMsgCurrentPackage     = "current package"
	InfoMsgStatementsRendered = "rendered import block"
)
