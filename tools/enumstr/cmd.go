package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rdeusser/enumstr/clangast"
	"github.com/rdeusser/enumstr/fsutil"
	"github.com/rdeusser/enumstr/generate"
	"github.com/rdeusser/enumstr/render"
	"github.com/rdeusser/enumstr/zappretty"
)

const envPrefix = "ENUMSTR"

// constructFlags all write the construct; the last one given wins.
var constructFlags = []string{"construct", "arr", "array", "fun", "func", "function"}

type command struct {
	stdout io.Writer
	stderr io.Writer

	v         *viper.Viper
	construct render.Construct

	// Resolved in PreRunE.
	generator *generate.Generator
	logger    *zap.Logger
	output    string
	list      bool
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	return newCLI(stdout, stderr).command()
}

func newCLI(stdout, stderr io.Writer) *command {
	return &command{
		stdout: stdout,
		stderr: stderr,
		v:      viper.New(),
	}
}

func (c *command) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumstr [flags] <file>",
		Short: "Generate enum-to-string lookups for a C or Objective-C header",
		Long: `enumstr parses a header with clang and writes, for every enum declared in it,
an array or a function that maps each constant to its name.

Every flag can also be set from the environment (ENUMSTR_INDENT, ENUMSTR_CLANG,
ENUMSTR_RESOURCE_DIR, ...) or from a config file given with --config.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       c.prepare,
		RunE:          c.run,
	}

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.VarP(&c.construct, "construct", "c", "construct to emit: array or function, any prefix is accepted")
	c.alias(flags, "arr", render.ConstructArray, true)
	c.alias(flags, "array", render.ConstructArray, false)
	c.alias(flags, "fun", render.ConstructFunction, true)
	c.alias(flags, "func", render.ConstructFunction, true)
	c.alias(flags, "function", render.ConstructFunction, false)
	flags.StringSliceP("enums", "e", nil, "only emit the named enums (repeatable, comma separated)")
	flags.StringP("indent", "i", render.DefaultIndent, "indentation unit: a count followed by s (spaces) or t (tabs)")
	flags.StringP("name", "n", render.DefaultTemplate, "name of the emitted construct; "+render.Placeholder+" is replaced with the enum name")
	flags.StringP("output", "o", "", "write to this file instead of stdout; it must not exist")
	flags.StringP("prefix", "p", "", "prefix added to the name")
	flags.StringP("lang", "l", render.DialectObjC.String(), "language of the emitted code: objc or c")
	flags.Bool("list", false, "print the names of the enums that would be emitted")
	flags.String("clang", "clang", "clang executable")
	flags.String("sysroot", "", "clang -isysroot, e.g. the macOS or iOS SDK")
	flags.String("resource-dir", "", "clang -resource-dir")
	flags.StringArrayP("include", "I", nil, "add a header search path (repeatable)")
	flags.StringArrayP("define", "D", nil, "define a macro in addition to the Foundation enum macros (repeatable)")
	flags.String("config", "", "read settings from this file (toml, yaml or json)")
	flags.BoolP("verbose", "v", false, "log debugging information to stderr")

	return cmd
}

func (c *command) alias(flags *pflag.FlagSet, name string, value render.Construct, hidden bool) {
	f := flags.VarPF(render.ConstructAlias{Target: &c.construct, Value: value}, name, "", "same as --construct "+value.String())
	f.NoOptDefVal = "true"
	f.Hidden = hidden
}

// prepare resolves and validates the configuration. It runs before anything
// is parsed, so bad settings and an existing output file never cost a clang
// run.
func (c *command) prepare(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if err := c.load(flags); err != nil {
		return err
	}

	c.logger = newLogger(c.stderr, c.v.GetBool("verbose"))

	construct, err := c.resolveConstruct(flags)
	if err != nil {
		return err
	}

	indent, err := render.ParseIndent(c.v.GetString("indent"))
	if err != nil {
		return err
	}

	dialect, err := render.ParseDialect(c.v.GetString("lang"))
	if err != nil {
		return err
	}

	clang := clangast.Config{
		Clang:       c.v.GetString("clang"),
		Language:    dialect.Language(),
		Sysroot:     c.v.GetString("sysroot"),
		ResourceDir: c.v.GetString("resource-dir"),
		IncludeDirs: c.stringList(flags, "include"),
	}

	if defines := c.stringList(flags, "define"); len(defines) > 0 {
		clang.Macros = append(slices.Clone(clangast.DefaultMacros), defines...)
	}

	var enums []string
	for _, e := range c.stringList(flags, "enums") {
		enums = append(enums, strings.Split(e, ",")...)
	}

	c.generator, err = generate.New(generate.Options{
		Path: args[0],
		Render: render.Config{
			Construct: construct,
			Indent:    indent,
			Template:  c.v.GetString("name"),
			Prefix:    c.v.GetString("prefix"),
			Dialect:   dialect,
		},
		Enums:  enums,
		Clang:  clang,
		Logger: c.logger,
	})
	if err != nil {
		return err
	}

	c.list = c.v.GetBool("list")
	c.output = c.v.GetString("output")

	if c.output != "" && !c.list {
		return fsutil.CheckNew(c.output)
	}

	return nil
}

// load sets up the precedence flag > environment > config file > default.
func (c *command) load(flags *pflag.FlagSet) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "binding flags")
	}

	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	return nil
}

func (c *command) resolveConstruct(flags *pflag.FlagSet) (render.Construct, error) {
	for _, name := range constructFlags {
		if flags.Changed(name) {
			return c.construct, nil
		}
	}
	return render.ParseConstruct(c.v.GetString("construct"))
}

// stringList reads a list setting. Flag values are taken as given since viper
// would split them on commas, which macro definitions contain.
func (c *command) stringList(flags *pflag.FlagSet, name string) []string {
	if f := flags.Lookup(name); f != nil && f.Changed {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return sv.GetSlice()
		}
	}
	return c.v.GetStringSlice(name)
}

func (c *command) run(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		_ = c.logger.Sync()
	}()

	root, err := c.generator.Parse(cmd.Context())
	if err != nil {
		return err
	}

	if c.list {
		for _, name := range c.generator.List(root) {
			if name == "" {
				name = "(anonymous)"
			}
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	}

	if c.output == "" {
		return c.generator.Write(c.stdout, root)
	}

	f, err := fsutil.CreateNew(c.output)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", c.output)
		}
	}()

	c.logger.Debug("writing output", zap.String("path", c.output))

	return c.generator.Write(f, root)
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zapcore.EncoderConfig{
		LevelKey:      "level",
		NameKey:       "logger",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
	}

	core := zapcore.NewCore(zappretty.NewCLIEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), level)

	return zap.New(core).Named("enumstr")
}
