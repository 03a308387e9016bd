package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	gettext "github.com/snapcore/po-converter"
	"github.com/snapcore/po-converter/internal/android"
	"github.com/snapcore/po-converter/internal/compare"
	"github.com/snapcore/po-converter/internal/config"
	"github.com/snapcore/po-converter/internal/logging"
	"github.com/snapcore/po-converter/internal/potemplate"
)

var timeNow = time.Now

type options struct {
	Config string `short:"c" long:"config" value-name:"FILE" description:"read settings from the YAML file FILE"`

	LocalesDir string `short:"d" long:"locales-dir" value-name:"DIRECTORY" description:"directory holding the template and the locale catalogs"`

	Domain string `long:"domain" value-name:"DOMAIN" description:"gettext domain, naming DOMAIN.pot and LOCALE/DOMAIN.po"`

	LogLevel string `long:"log-level" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"minimum level of log messages"`
}

// app carries what the commands share.
type app struct {
	opts   options
	stdout io.Writer

	// logOutput replaces the stderr console writer when set
	logOutput io.Writer
}

// config merges the configuration file with the command line options and
// sets up logging.
func (a *app) config() (config.Config, error) {
	cfg, err := config.Load(a.opts.Config)
	if err != nil {
		return cfg, err
	}
	if a.opts.LocalesDir != "" {
		cfg.LocalesDir = a.opts.LocalesDir
	}
	if a.opts.Domain != "" {
		cfg.Domain = a.opts.Domain
	}
	if a.opts.LogLevel != "" {
		cfg.Log.Level = a.opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if a.logOutput != nil {
		err = logging.SetupOutput(cfg.Log.Level, a.logOutput)
	} else {
		err = logging.Setup(cfg.Log.Level)
	}
	if err != nil {
		return cfg, err
	}
	compare.Logger = logging.For("compare")
	return cfg, nil
}

func (a *app) translations(cfg config.Config) gettext.Translations {
	return gettext.NewTranslations(cfg.LocalesDir, cfg.Domain, gettext.DefaultResolver)
}

type initCommand struct {
	app *app

	PackageName string `long:"package-name" value-name:"PACKAGE" description:"set package name in the header"`

	MsgidBugsAddress string `long:"msgid-bugs-address" value-name:"ADDRESS" description:"set report address for msgid bugs"`
}

func (cmd *initCommand) Execute(args []string) error {
	cfg, err := cmd.app.config()
	if err != nil {
		return err
	}
	header := potemplate.Header{
		PackageName:      cfg.Template.PackageName,
		MsgidBugsAddress: cfg.Template.MsgidBugsAddress,
		PluralForms:      cfg.Template.PluralForms,
		CreationDate:     potemplate.FormatTime(timeNow()),
	}
	if cmd.PackageName != "" {
		header.PackageName = cmd.PackageName
	}
	if cmd.MsgidBugsAddress != "" {
		header.MsgidBugsAddress = cmd.MsgidBugsAddress
	}

	path := cmd.app.translations(cfg).TemplatePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := potemplate.Create(path, header); err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	log.Info().Str("sys", "init").Str("path", path).Msg("Created template")
	return nil
}

type syncCommand struct {
	app *app

	AndroidResDir string `long:"android-res-dir" value-name:"DIRECTORY" description:"Android res directory holding values/strings.xml"`

	DryRun bool `short:"n" long:"dry-run" description:"list the missing messages without changing the template"`
}

func (cmd *syncCommand) Execute(args []string) error {
	cfg, err := cmd.app.config()
	if err != nil {
		return err
	}
	if cmd.AndroidResDir != "" {
		cfg.AndroidResDir = cmd.AndroidResDir
	}
	if cfg.AndroidResDir == "" {
		return errors.New("android res directory is not set")
	}
	logger := logging.For("sync")

	trans := cmd.app.translations(cfg)
	template, err := trans.Template()
	if err != nil {
		return err
	}
	forms, err := template.Header().PluralForms()
	if err != nil {
		return fmt.Errorf("%s: %w", trans.TemplatePath(), err)
	}
	resources, err := android.ParseFile(filepath.Join(cfg.AndroidResDir, "values", "strings.xml"))
	if err != nil {
		return err
	}

	missing := compare.Missing(template.All(), resources.Entries(forms.NPlurals))
	if cmd.DryRun {
		for _, entry := range missing {
			fmt.Fprintln(cmd.app.stdout, gettext.Quote(entry.ID))
		}
		return nil
	}
	if len(missing) == 0 {
		logger.Info().Msg("Template is up to date")
		return nil
	}
	if err := gettext.Append(trans.TemplatePath(), slices.Values(missing)); err != nil {
		return fmt.Errorf("cannot update %s: %w", trans.TemplatePath(), err)
	}
	logger.Info().
		Int("count", len(missing)).
		Str("path", trans.TemplatePath()).
		Msg("Appended missing messages")
	return nil
}

type statusCommand struct {
	app *app

	Verbose bool `short:"v" long:"verbose" description:"list untranslated and absent messages"`

	Positional struct {
		Locales []string `positional-arg-name:"LOCALE"`
	} `positional-args:"yes"`
}

func (cmd *statusCommand) locales(cfg config.Config) ([]string, error) {
	if len(cmd.Positional.Locales) > 0 {
		return cmd.Positional.Locales, nil
	}
	if len(cfg.Locales) > 0 {
		return cfg.Locales, nil
	}
	if cfg.AndroidResDir == "" {
		return nil, errors.New("no locales given")
	}
	tags, err := android.Locales(cfg.AndroidResDir)
	if err != nil {
		return nil, err
	}
	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		locales = append(locales, tag.String())
	}
	return locales, nil
}

func (cmd *statusCommand) Execute(args []string) error {
	cfg, err := cmd.app.config()
	if err != nil {
		return err
	}
	locales, err := cmd.locales(cfg)
	if err != nil {
		return err
	}

	trans := cmd.app.translations(cfg)
	template, err := trans.Template()
	if err != nil {
		return err
	}
	logger := logging.For("status")
	for _, locale := range locales {
		catalog, err := trans.Locale(locale)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("locale", locale).Msg("No catalog for locale")
			continue
		}
		if err != nil {
			return err
		}
		report := compare.Completeness(template, catalog)
		fmt.Fprintf(cmd.app.stdout, "%-8s %5.1f%% %d/%d\n", locale, report.Percent(), report.Translated, report.Total)
		if !cmd.Verbose {
			continue
		}
		for _, id := range report.Untranslated {
			fmt.Fprintf(cmd.app.stdout, "  untranslated: %s\n", id)
		}
		for _, id := range report.Absent {
			fmt.Fprintf(cmd.app.stdout, "  absent: %s\n", id)
		}
	}
	return nil
}

func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.AddCommand("init", "Create the template",
		"Create DOMAIN.pot in the locales directory, holding only a header.",
		&initCommand{app: a})
	parser.AddCommand("sync", "Add missing messages to the template",
		"Append the Android strings that the template lacks to DOMAIN.pot.",
		&syncCommand{app: a})
	parser.AddCommand("status", "Report translation completeness",
		"Compare the catalog of each LOCALE with the template.",
		&statusCommand{app: a})
	return parser
}

func run(args []string, stdout io.Writer) error {
	a := &app{stdout: stdout}
	_, err := newParser(a).ParseArgs(args)
	return err
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}
	if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagsErr.Message)
		os.Exit(0)
	}
	log.Fatal().Err(err).Msg("po-converter failed")
}
