package mapevent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

//go:embed defaults.ini
var defaultConfig []byte

const presetSectionPrefix = "preset."

// Config is the engine configuration.
type Config struct {
	NameTags NameTagConfig

	// FadeFrames is the overlay fade-in length in ticks; 0 shows tags at once.
	FadeFrames int

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic("mapevent: built-in config is invalid: " + err.Error())
	}
	return cfg
}

// LoadConfig layers the given INI sources over the built-in defaults. A
// source is a file name, []byte or io.ReadCloser, as accepted by
// ini.LoadSources.
func LoadConfig(sources ...interface{}) (Config, error) {
	options := ini.LoadOptions{
		SkipUnrecognizableLines:  true,
		SpaceBeforeInlineComment: true,
	}
	f, err := ini.LoadSources(options, defaultConfig, sources...)
	if err != nil {
		return Config{}, fmt.Errorf("mapevent: failed to read config: %w", err)
	}
	return configFromINI(f)
}

func configFromINI(f *ini.File) (Config, error) {
	var cfg Config

	sec := f.Section("nametag")
	cfg.NameTags.Enabled = sec.Key("show").MustBool(true)
	cfg.NameTags.GateSwitch = max(sec.Key("switch_id").MustInt(0), 0)
	cfg.NameTags.DefaultPreset = strings.TrimSpace(sec.Key("default_preset").String())
	cfg.FadeFrames = max(sec.Key("fade_frames").MustInt(0), 0)

	table := NewPresetTable()
	for _, s := range f.Sections() {
		tag, ok := strings.CutPrefix(s.Name(), presetSectionPrefix)
		if !ok || strings.TrimSpace(tag) == "" {
			continue
		}
		p, err := presetFromSection(strings.TrimSpace(tag), s)
		if err != nil {
			return Config{}, err
		}
		table.Add(p)
	}
	if raw := sec.Key("presets_json").String(); strings.TrimSpace(raw) != "" {
		presets, err := ParsePresetParams(raw)
		if err != nil {
			return Config{}, fmt.Errorf("mapevent: nametag.presets_json: %w", err)
		}
		for _, p := range presets {
			table.Add(p)
		}
	}
	cfg.NameTags.Presets = table

	logSec := f.Section("log")
	cfg.LogLevel = logSec.Key("level").MustString("info")
	cfg.LogFormat = logSec.Key("format").MustString("text")
	return cfg, nil
}

func presetFromSection(tag string, s *ini.Section) (StylePreset, error) {
	p := DefaultStyle()
	p.Tag = tag
	p.FontSize = s.Key("font_size").MustFloat64(p.FontSize)
	p.OutlineWidth = s.Key("outline_width").MustFloat64(p.OutlineWidth)
	p.OutlineOpacity = s.Key("outline_opacity").MustInt(p.OutlineOpacity)
	p.TextOpacity = s.Key("text_opacity").MustInt(p.TextOpacity)
	p.BgOpacity = s.Key("bg_opacity").MustInt(p.BgOpacity)
	p.BgRadius = s.Key("bg_radius").MustFloat64(p.BgRadius)
	p.Padding = s.Key("padding").MustFloat64(p.Padding)
	p.OffsetY = s.Key("offset_y").MustFloat64(p.OffsetY)

	colors := []struct {
		key string
		dst *Color
	}{
		{"text_color", &p.TextColor},
		{"outline_color", &p.OutlineColor},
		{"bg_color", &p.BgColor},
	}
	for _, c := range colors {
		v := strings.TrimSpace(s.Key(c.key).String())
		if v == "" {
			continue
		}
		col, err := ParseColor(v)
		if err != nil {
			return StylePreset{}, fmt.Errorf("mapevent: preset %q: %s: %w", tag, c.key, err)
		}
		*c.dst = col
	}
	return p.normalize(), nil
}
