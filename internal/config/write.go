package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/wdl/internal/log"
)

// DefaultConfigYAML renders Defaults as a commented YAML document.
func DefaultConfigYAML() ([]byte, error) {
	d := Defaults()
	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "wdl configuration",
		Content: []*yaml.Node{mapping(
			section("cache", "Compile result cache, keyed by source sha256",
				field("enabled", strconv.FormatBool(d.Cache.Enabled), ""),
				field("ttl", d.Cache.TTL.String(), "e.g. 30s, 10m"),
			),
			section("catalog", "Saved layouts (wdl catalog ...)",
				field("path", "~/.config/wdl/catalog.db", ""),
			),
			section("log", "Debug log written with --debug or WDL_DEBUG",
				field("level", d.Log.Level, "debug, info, warn or error"),
			),
			section("preview", "Live preview (wdl preview FILE)",
				field("debounce", d.Preview.Debounce.String(), "delay after the last file write"),
				field("width", strconv.Itoa(d.Preview.Width), "0 = terminal width"),
			),
			section("render", "",
				field("color", strconv.FormatBool(d.Render.Color), "false is the same as --no-color"),
			),
			field("markdown_style", d.MarkdownStyle, "dark or light"),
			section("tracing", "OpenTelemetry spans for each compile",
				field("enabled", strconv.FormatBool(d.Tracing.Enabled), ""),
				field("exporter", d.Tracing.Exporter, "none, file, stdout or otlp"),
				field("file_path", "~/.config/wdl/traces/traces.jsonl", ""),
				field("otlp_endpoint", d.Tracing.OTLPEndpoint, ""),
				field("sample_rate", strconv.FormatFloat(d.Tracing.SampleRate, 'f', 1, 64), "0.0 to 1.0"),
				field("service_name", d.Tracing.ServiceName, ""),
			),
		)},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefaultConfig writes the default config to path, creating its
// directory.
func WriteDefaultConfig(path string) error {
	log.Debug(log.CatConfig, "writing default config", "path", path)

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", path)
	return nil
}

// pair is a key node and its value node.
type pair [2]*yaml.Node

func mapping(pairs ...pair) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pairs {
		n.Content = append(n.Content, p[0], p[1])
	}
	return n
}

func section(key, comment string, fields ...pair) pair {
	return pair{
		{Kind: yaml.ScalarNode, Value: key, HeadComment: comment},
		mapping(fields...),
	}
}

func field(key, value, comment string) pair {
	return pair{
		{Kind: yaml.ScalarNode, Value: key},
		{Kind: yaml.ScalarNode, Value: value, LineComment: comment},
	}
}
