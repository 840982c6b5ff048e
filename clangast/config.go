package clangast

// Languages accepted by Config.Language. They are passed to clang's -x flag.
const (
	LanguageObjC = "objective-c"
	LanguageC    = "c"
)

// DefaultMacros turn the Foundation and CoreFoundation enum macros into plain
// enum declarations. They are normally defined in NSObjCRuntime.h and
// CFAvailability.h, which cannot be included without the platform SDK.
var DefaultMacros = []string{
	"NS_ENUM(_type, _name)=enum _name : _type _name; enum _name : _type",
	"NS_OPTIONS(_type, _name)=enum _name : _type _name; enum _name : _type",
	"NS_CLOSED_ENUM(_type, _name)=enum _name : _type _name; enum _name : _type",
	"CF_ENUM(_type, _name)=enum _name : _type _name; enum _name : _type",
	"CF_OPTIONS(_type, _name)=enum _name : _type _name; enum _name : _type",
	"NS_ENUM_AVAILABLE=",
	"NS_ENUM_AVAILABLE_IOS(_ios)=",
	"NS_ENUM_AVAILABLE_MAC(_mac)=",
	"NS_SWIFT_NAME(_name)=",
}

// Config describes how clang is invoked. The zero value runs "clang" from PATH
// in Objective-C mode with DefaultMacros.
type Config struct {
	// Clang is the clang executable; a bare name is looked up in PATH.
	Clang string

	// Language is one of LanguageObjC or LanguageC.
	Language string

	Sysroot     string
	ResourceDir string
	IncludeDirs []string

	// Macros are passed as -D definitions. Nil means DefaultMacros; an empty,
	// non-nil slice disables them.
	Macros []string

	// ExtraArgs are appended verbatim before the input path.
	ExtraArgs []string
}

func (c Config) clang() string {
	if c.Clang == "" {
		return "clang"
	}
	return c.Clang
}

func (c Config) language() string {
	if c.Language == "" {
		return LanguageObjC
	}
	return c.Language
}

func (c Config) macros() []string {
	if c.Macros == nil {
		return DefaultMacros
	}
	return c.Macros
}

// Args returns the clang arguments, excluding the executable, that dump the
// AST of path as JSON.
func (c Config) Args(path string) []string {
	args := []string{
		"-fsyntax-only",
		"-Xclang", "-ast-dump=json",
		"-ferror-limit=0",
		"-fno-color-diagnostics",
		"-x", c.language(),
	}

	if c.Sysroot != "" {
		args = append(args, "-isysroot", c.Sysroot)
	}

	if c.ResourceDir != "" {
		args = append(args, "-resource-dir", c.ResourceDir)
	}

	for _, dir := range c.IncludeDirs {
		args = append(args, "-I", dir)
	}

	for _, macro := range c.macros() {
		args = append(args, "-D", macro)
	}

	args = append(args, c.ExtraArgs...)
	args = append(args, path)

	return args
}
