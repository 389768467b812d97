package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/TNAJanssen/JMSTranslationBundle2/php/parser"
	"github.com/TNAJanssen/JMSTranslationBundle2/translation"
	"github.com/TNAJanssen/JMSTranslationBundle2/translation/dump"
	"github.com/TNAJanssen/JMSTranslationBundle2/translation/extractor"
)

// commonlogReporter adapts a commonlog logger to the extractor's
// diagnostic sink.
type commonlogReporter struct {
	log commonlog.Logger
}

func (r commonlogReporter) Error(message string) {
	r.log.Error(message)
}

func newExtractCmd() *cobra.Command {
	var (
		format       string
		outputDir    string
		locale       string
		sourceLocale string
		customKeys   []string
		choicePolicy string
		exclude      []string
		strict       bool
		verbosity    int
	)

	cmd := &cobra.Command{
		Use:   "extract <path>...",
		Short: "Extract a translation catalogue from PHP files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			// config file settings fill in whatever the flags left alone
			v := viper.New()
			v.SetConfigName(".jmstrans")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
			if err := v.ReadInConfig(); err == nil {
				customKeys = append(customKeys, v.GetStringSlice("custom_keys")...)
				exclude = append(exclude, v.GetStringSlice("exclude")...)
				if !cmd.Flags().Changed("choice-policy") && v.IsSet("choice_policy") {
					choicePolicy = v.GetString("choice_policy")
				}
			}

			policy, err := parseChoicePolicy(choicePolicy)
			if err != nil {
				return err
			}

			opts := []extractor.Option{
				extractor.WithChoicePolicy(policy),
				extractor.WithCustomKeys(customKeys...),
			}
			if !strict {
				opts = append(opts, extractor.WithLogger(commonlogReporter{
					log: commonlog.GetLogger("jmstrans.extract"),
				}))
			}
			ex := extractor.New(opts...)

			files, err := collectFiles(args, exclude)
			if err != nil {
				return err
			}

			cat := translation.NewCatalogue()
			for _, file := range files {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read php file: %w", err)
				}
				if err := ex.Extract(parser.Parse(data, file), cat); err != nil {
					return fmt.Errorf("extract %s: %w", file, err)
				}
			}

			return writeCatalogue(cat, format, outputDir, locale, sourceLocale)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, xliff)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: stdout)")
	cmd.Flags().StringVar(&locale, "locale", "en", "target locale for the generated files")
	cmd.Flags().StringVar(&sourceLocale, "source-locale", "en", "source locale of the extracted strings")
	cmd.Flags().StringSliceVar(&customKeys, "custom-keys", nil, "additional option keys to extract like labels")
	cmd.Flags().StringVar(&choicePolicy, "choice-policy", "legacy", "choice reading convention (legacy, invert)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns of files to skip")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on unextractable literals instead of logging them")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	return cmd
}

func parseChoicePolicy(name string) (extractor.ChoicePolicy, error) {
	switch name {
	case "legacy":
		return extractor.ChoicesLegacy, nil
	case "invert":
		return extractor.ChoicesAlwaysInvert, nil
	}
	return 0, fmt.Errorf("unknown choice policy: %s (expected legacy or invert)", name)
}

func collectFiles(paths, exclude []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if !excluded(path, exclude) {
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".php") || excluded(p, exclude) {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func writeCatalogue(cat *translation.Catalogue, format, outputDir, locale, sourceLocale string) error {
	ext := "yml"
	if format == "xliff" {
		ext = "xlf"
	}
	for _, domain := range cat.Domains() {
		var data []byte
		var err error
		switch format {
		case "yaml":
			data, err = dump.YAML(cat, domain)
		case "xliff":
			data, err = dump.XLIFF(cat, domain, sourceLocale, locale)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("dump domain %s: %w", dump.DomainName(domain), err)
		}
		if outputDir == "" {
			fmt.Printf("# %s\n%s", dump.FileName(domain, locale, ext), data)
			continue
		}
		target := filepath.Join(outputDir, dump.FileName(domain, locale, ext))
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	return nil
}
