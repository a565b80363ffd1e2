package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"throw":      KwThrow,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"instanceof": KwInstanceof,
	"in":         KwIn,
	"of":         KwOf,
	"void":       KwVoid,
	"null":       KwNull,
	"undefined":  KwUndefined,
	"true":       KwTrue,
	"false":      KwFalse,
	"this":       KwThis,
	"super":      KwSuper,
	"class":      KwClass,
	"extends":    KwExtends,
	"implements": KwImplements,
	"interface":  KwInterface,
	"enum":       KwEnum,
	"type":       KwType,
	"namespace":  KwNamespace,
	"module":     KwModule,
	"import":     KwImport,
	"export":     KwExport,
	"from":       KwFrom,
	"as":         KwAs,
	"static":     KwStatic,
	"public":     KwPublic,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"readonly":   KwReadonly,
	"abstract":   KwAbstract,
	"async":      KwAsync,
	"await":      KwAwait,
	"yield":      KwYield,
	"get":        KwGet,
	"set":        KwSet,
	"keyof":      KwKeyof,
	"infer":      KwInfer,
	"is":         KwIs,
	"asserts":    KwAsserts,
	"unique":     KwUnique,
	"declare":    KwDeclare,
	"any":        KwAny,
	"unknown":    KwUnknown,
	"never":      KwNever,
	"object":     KwObjectKw,
	"string":     KwString,
	"number":     KwNumber,
	"boolean":    KwBoolean,
	"bigint":     KwBigint,
	"symbol":     KwSymbol,
	"with":       KwWith,
	"debugger":   KwDebugger,
}

// contextualKeywords holds keywords that are also valid identifiers in most
// positions (e.g. `type`, `as`, `of`, `get`/`set`, `readonly`, `infer`,
// `asserts`, `unique`, `declare`, `namespace`, `module`, `from`, `is`). The
// lexer always reports the keyword Kind; the parser decides, per production,
// whether to treat the token as a plain identifier instead.
var contextualKeywords = map[Kind]bool{
	KwType: true, KwAs: true, KwOf: true, KwGet: true, KwSet: true,
	KwReadonly: true, KwInfer: true, KwAsserts: true, KwUnique: true,
	KwDeclare: true, KwNamespace: true, KwModule: true, KwFrom: true,
	KwIs: true, KwAny: true, KwUnknown: true, KwNever: true, KwObjectKw: true,
	KwString: true, KwNumber: true, KwBoolean: true, KwBigint: true, KwSymbol: true,
	KwAsync: true, KwAwait: true, KwYield: true, KwStatic: true, KwPublic: true,
	KwPrivate: true, KwProtected: true, KwAbstract: true,
}

// LookupKeyword returns the keyword Kind for an identifier-shaped lexeme, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsContextual reports whether a keyword Kind may also be used as a plain
// identifier depending on grammatical position.
func IsContextual(k Kind) bool {
	return contextualKeywords[k]
}
