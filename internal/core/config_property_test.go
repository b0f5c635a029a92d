package core

import (
	"fmt"
	"testing"

	"github.com/valter-silva-au/todos/pkg/models"
	"pgregory.net/rapid"
)

// Any valid combination of values written to .todosconfig loads back intact.
func TestProperty_ConfigRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		filter := rapid.SampledFrom(models.FilterModes()).Draw(rt, "filter")
		altScreen := rapid.Bool().Draw(rt, "altScreen")
		placeholder := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,20}[A-Za-z?]`).Draw(rt, "placeholder")
		charLimit := rapid.IntRange(0, 4096).Draw(rt, "charLimit")
		logEnabled := rapid.Bool().Draw(rt, "logEnabled")
		logPath := rapid.StringMatching(`[a-z]{1,8}/[a-z]{1,8}\.jsonl`).Draw(rt, "logPath")

		dir := t.TempDir()
		writeFile(t, dir, ".todosconfig.yaml", fmt.Sprintf(`defaults:
  filter: %s
ui:
  alt_screen: %t
  placeholder: %q
  char_limit: %d
event_log:
  enabled: %t
  path: %s
`, filter, altScreen, placeholder, charLimit, logEnabled, logPath))

		cm := NewConfigurationManager(dir)
		cfg, err := cm.LoadGlobalConfig()
		if err != nil {
			rt.Fatalf("LoadGlobalConfig: %v", err)
		}
		want := models.GlobalConfig{
			DefaultFilter: filter,
			UI:            models.UIConfig{AltScreen: altScreen, Placeholder: placeholder, CharLimit: charLimit},
			EventLog:      models.EventLogConfig{Enabled: logEnabled, Path: logPath},
		}
		if *cfg != want {
			rt.Fatalf("loaded %+v, want %+v", *cfg, want)
		}
		if err := cm.ValidateConfig(cfg); err != nil {
			rt.Fatalf("ValidateConfig: %v", err)
		}
	})
}
