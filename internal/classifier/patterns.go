package classifier

import (
	"regexp"
	"strings"
)

// Shapes that are never prose, whatever the context.
var (
	letterPattern    = regexp.MustCompile(`\p{L}`)
	letterRunPattern = regexp.MustCompile(`\p{L}{2,}`)

	urlPattern = regexp.MustCompile(`^(?i)(?:(?:https?|ftp|wss?|file|blob|data|mailto|tel):\S+|//\S+|www\.\S+)$`)

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	pathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:\.{1,2}/|/|~/)\S*$`),
		regexp.MustCompile(`^[A-Za-z]:[\\/]\S*$`),
		regexp.MustCompile(`^[\w.-]+(?:/[\w.@*-]+){2,}/?$`),
		regexp.MustCompile(`^[\w.-]+/[\w.@*-]*\.\w+$`),
		regexp.MustCompile(`^@[\w.-]+/[\w.-]+$`),
		regexp.MustCompile(`^(?i)[\w.-]+\.(?:jsx?|tsx?|mjs|cjs|json|css|scss|sass|less|html?|md|mdx|svg|png|jpe?g|gif|webp|avif|ico|woff2?|ttf|otf|ya?ml|txt|csv|pdf|xml|wasm)$`),
	}

	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

	colorFunctionPattern = regexp.MustCompile(`^(?i)(?:rgba?|hsla?|hwb|lab|lch|oklab|oklch|color)\([^)]*\)$`)

	cssUnitPattern     = regexp.MustCompile(`^(?:-?\d*\.?\d+(?:px|em|rem|vh|vw|vmin|vmax|dvh|svh|lvh|%|pt|pc|cm|mm|in|ex|ch|fr|deg|rad|turn|s|ms|dpi|dppx)?(?:\s+|$))+$`)
	cssFunctionPattern = regexp.MustCompile(`^(?i)(?:calc|var|min|max|clamp|translate[xyz3d]*|rotate[xyz]?|scale[xyz]?|cubic-bezier)\(.*\)$`)

	mimePattern = regexp.MustCompile(`^(?:application|audio|font|image|message|model|multipart|text|video)/[\w.+*-]+$`)

	dateSeparatorPattern = regexp.MustCompile(`[\s\-/.:,]+`)
)

// dateTokens are the format tokens shared by moment, dayjs, date-fns and luxon.
var dateTokens = map[string]bool{
	"YYYY": true, "YY": true, "yyyy": true, "yy": true,
	"M": true, "MM": true, "MMM": true, "MMMM": true,
	"D": true, "DD": true, "Do": true, "d": true, "dd": true, "ddd": true, "dddd": true,
	"H": true, "HH": true, "h": true, "hh": true,
	"m": true, "mm": true, "s": true, "ss": true, "SSS": true,
	"A": true, "a": true, "Z": true, "ZZ": true, "X": true, "x": true,
	"EEE": true, "EEEE": true, "LT": true, "LTS": true, "L": true, "LL": true, "LLL": true, "LLLL": true,
}

// Identifier shapes. These only apply to text without internal whitespace.
var (
	camelCasePattern      = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-zA-Z0-9]*)+$`)
	pascalCasePattern     = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]*)+$`)
	screamingSnakePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`)
	kebabCasePattern      = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)+$`)
	snakeCasePattern      = regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)+$`)
	dottedKeyPattern      = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)+$`)
)

var eventHandlerPattern = regexp.MustCompile(`^on[A-Z]`)

// Utility class detection (Tailwind, Bootstrap and friends).
var (
	utilityVariantPattern = regexp.MustCompile(`^(?:[a-z0-9-]+:)+`)
	utilityTokenPattern   = regexp.MustCompile(`^[a-z0-9:/\[\]().,#%!_-]+$`)
)

const maxUtilityTokenLength = 40

var utilityExact = map[string]bool{
	"flex": true, "grid": true, "block": true, "inline": true, "inline-block": true,
	"inline-flex": true, "inline-grid": true, "hidden": true, "contents": true, "table": true,
	"relative": true, "absolute": true, "fixed": true, "sticky": true, "static": true,
	"container": true, "truncate": true, "underline": true, "italic": true, "uppercase": true,
	"lowercase": true, "capitalize": true, "rounded": true, "border": true, "shadow": true,
	"grow": true, "shrink": true, "visible": true, "invisible": true, "antialiased": true,
	"transition": true, "outline": true, "ring": true, "sr-only": true, "prose": true,
	"row": true, "col": true, "btn": true, "clearfix": true, "transform": true,
}

var utilityPrefixes = []string{
	"p-", "px-", "py-", "pt-", "pb-", "pl-", "pr-", "ps-", "pe-",
	"m-", "mx-", "my-", "mt-", "mb-", "ml-", "mr-", "ms-", "me-",
	"w-", "h-", "min-w-", "min-h-", "max-w-", "max-h-", "size-",
	"gap-", "space-", "text-", "font-", "leading-", "tracking-",
	"bg-", "border-", "rounded-", "shadow-", "ring-", "outline-",
	"flex-", "grid-", "col-", "row-", "items-", "justify-", "content-", "self-", "place-", "order-",
	"z-", "top-", "bottom-", "left-", "right-", "inset-", "start-", "end-",
	"opacity-", "overflow-", "cursor-", "transition-", "duration-", "ease-", "delay-", "animate-",
	"translate-", "rotate-", "scale-", "skew-", "origin-", "fill-", "stroke-", "object-", "aspect-",
	"divide-", "from-", "via-", "to-", "decoration-", "underline-", "list-", "align-", "whitespace-",
	"break-", "select-", "pointer-events-", "resize-", "basis-", "float-", "clear-",
	"btn-", "d-", "fs-", "fw-", "lh-", "sm-", "md-", "lg-", "xl-", "is-", "has-",
}

// Call targets whose string arguments are never user-facing.
var nonTranslatableCalls = map[string]bool{
	"debug": true, "log.debug": true, "logger.debug": true, "logger.trace": true,
	"require": true, "require.resolve": true, "import": true,
	"JSON.parse": true, "JSON.stringify": true,
	"encodeURIComponent": true, "encodeURI": true, "decodeURIComponent": true, "decodeURI": true,
	"escape": true, "unescape": true,
	"RegExp": true, "Symbol": true, "Symbol.for": true,
}

// Methods matched on the last segment of a flattened callee.
var nonTranslatableMethods = map[string]bool{
	"querySelector": true, "querySelectorAll": true, "getElementById": true,
	"getElementsByClassName": true, "getElementsByTagName": true, "getElementsByName": true,
	"closest": true, "matches": true, "createElement": true,
	"setAttribute": true, "getAttribute": true, "removeAttribute": true, "hasAttribute": true,
	"toggleAttribute": true, "setAttributeNS": true, "getAttributeNS": true,
	"addEventListener": true, "removeEventListener": true,
	"getItem": true, "setItem": true, "removeItem": true,
	"getPropertyValue": true, "setProperty": true,
}

var nonTranslatableSuffixes = []string{
	"classList.add", "classList.remove", "classList.toggle", "classList.contains", "classList.replace",
}

func isNonTranslatableCall(name string) bool {
	if name == "" {
		return false
	}
	if nonTranslatableCalls[name] || strings.HasPrefix(name, "console.") {
		return true
	}
	last := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		last = name[i+1:]
	}
	if nonTranslatableMethods[last] {
		return true
	}
	for _, suffix := range nonTranslatableSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func isPath(s string) bool {
	for _, p := range pathPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func isDateFormat(s string) bool {
	tokens := dateSeparatorPattern.Split(s, -1)
	seen := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if !dateTokens[tok] {
			return false
		}
		seen++
	}
	// a lone short token ("Do", "LL") is more likely a word than a format
	return seen > 1 || (seen == 1 && len(s) >= 4)
}

func isIdentifierShape(s string) bool {
	return camelCasePattern.MatchString(s) ||
		pascalCasePattern.MatchString(s) ||
		screamingSnakePattern.MatchString(s) ||
		kebabCasePattern.MatchString(s) ||
		snakeCasePattern.MatchString(s) ||
		dottedKeyPattern.MatchString(s)
}

func isUtilityToken(tok string) bool {
	tok = utilityVariantPattern.ReplaceAllString(tok, "")
	tok = strings.TrimLeft(tok, "!-")
	if utilityExact[tok] {
		return true
	}
	for _, prefix := range utilityPrefixes {
		if strings.HasPrefix(tok, prefix) {
			return true
		}
	}
	return false
}

func isUtilityClassList(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return false
	}
	matched := 0
	for _, tok := range tokens {
		if len(tok) > maxUtilityTokenLength || !utilityTokenPattern.MatchString(tok) {
			return false
		}
		if isUtilityToken(tok) {
			matched++
		}
	}
	return matched*2 > len(tokens)
}
