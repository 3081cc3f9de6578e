package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"whisparr/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("ensure config dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file generated: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path for the config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [key]",
		Short: "Print the effective configuration, or one dotted key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				value, err := configValueByPath(cfg, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}
			encoded, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

// configValueByPath resolves a dotted key like "whisper.model_size" against
// the typed config by walking toml struct tags. This keeps the original
// dotted-key ergonomics at the CLI edge without any component reading a raw
// mapping.
func configValueByPath(cfg *config.Config, path string) (string, error) {
	keys := strings.Split(strings.TrimSpace(path), ".")
	value := reflect.ValueOf(cfg).Elem()
	for _, key := range keys {
		if value.Kind() != reflect.Struct {
			return "", fmt.Errorf("config key not found: %s", path)
		}
		field, ok := fieldByTOMLTag(value, key)
		if !ok {
			return "", fmt.Errorf("config key not found: %s", path)
		}
		value = field
	}
	if value.Kind() == reflect.Struct {
		return "", errors.New("key names a section, not a value; append a field name")
	}
	return fmt.Sprintf("%v", value.Interface()), nil
}

func fieldByTOMLTag(value reflect.Value, tag string) (reflect.Value, bool) {
	valueType := value.Type()
	for i := 0; i < valueType.NumField(); i++ {
		fieldTag := valueType.Field(i).Tag.Get("toml")
		if name, _, _ := strings.Cut(fieldTag, ","); name == tag {
			return value.Field(i), true
		}
	}
	return reflect.Value{}, false
}
