package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change fff configuration.

Values are read from the config file and may be overridden by FFF_BASE_PATH,
FFF_LIBRARY_PATH, FFF_FRECENCY_DB_PATH, FFF_HISTORY_DB_PATH and FFF_DATA_DIR
(also read from a .env file in the working directory).`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a configuration value so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	values := settingsValues(services.Settings.Load())
	p := newPrinter(cmd)
	for _, key := range services.Settings.Keys() {
		value, ok := values[key]
		if !ok || value == "" {
			value = p.style(mutedStyle, "(default)")
		}
		p.Printf("%-26s %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := services.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	newPrinter(cmd).Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := services.Settings.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	newPrinter(cmd).Printf("%s unset\n", args[0])
	return nil
}

// settingsValues renders resolved settings under their config keys.
func settingsValues(s domain.Settings) map[string]string {
	return map[string]string{
		"finder.base_path":          s.BasePath,
		"finder.frecency_db_path":   s.FrecencyDBPath,
		"finder.history_db_path":    s.HistoryDBPath,
		"finder.use_unsafe_no_lock": strconv.FormatBool(s.UseUnsafeNoLock),
		"finder.warmup_mmap_cache":  strconv.FormatBool(s.WarmupMmapCache),
		"finder.scan_timeout_ms":    strconv.FormatInt(s.ScanTimeout.Milliseconds(), 10),
		"native.library_path":       s.LibraryPath,
		"search.page_size":          strconv.Itoa(s.SearchPageSize),
		"grep.mode":                 string(s.GrepMode),
		"grep.page_limit":           positive(s.GrepPageLimit),
		"grep.time_budget_ms":       positive(s.GrepTimeBudgetMs),
		"storage.data_dir":          s.DataDir,
		"storage.cursor_ttl_hours":  strconv.Itoa(int(s.CursorTTL / time.Hour)),
	}
}

// positive renders n, or nothing when the engine default applies.
func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
