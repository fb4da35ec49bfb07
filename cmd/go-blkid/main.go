// Command go-blkid identifies the content of a block device or disk image:
// filesystem, RAID/container superblock, swap area, or hibernation image.
// It loads an optional YAML filter/request policy, binds the target path
// as a device, and prints every tag the dispatch loop turns up.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kzak/go-blkid"
	"github.com/kzak/go-blkid/internal/config"
)

func main() {
	devicePath := flag.String("device", "", "path to the block device or disk image to identify")
	configPath := flag.String("config", "", "path to an optional YAML filter/request policy file")
	offset := flag.Int64("offset", 0, "byte offset into the device to treat as origin")
	size := flag.Uint64("size", 0, "logical size in bytes to probe; 0 queries the device")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	allMatches := flag.Bool("all", false, "keep probing after the first match until the registry is exhausted")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)

	if *devicePath == "" {
		fmt.Fprintln(os.Stderr, "go-blkid: -device is required")
		os.Exit(2)
	}

	f, err := os.Open(*devicePath)
	if err != nil {
		logger.Error("failed to open device", slog.String("path", *devicePath), slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	session := blkid.New()

	if *configPath != "" {
		cfg, err := config.ParseFile(*configPath)
		if err != nil {
			logger.Error("failed to load config", slog.String("path", *configPath), slog.Any("error", err))
			os.Exit(1)
		}
		if err := applyConfig(session, cfg); err != nil {
			logger.Error("failed to apply config", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if err := session.Bind(f, *offset, *size); err != nil {
		logger.Error("failed to bind device", slog.String("path", *devicePath), slog.Any("error", err))
		os.Exit(1)
	}
	defer session.Free()

	logger.Info("device bound",
		slog.String("path", *devicePath),
		slog.Int64("origin", session.Origin()),
		slog.Uint64("size", session.Size()),
	)

	found := false
	for {
		status, err := session.ProbeNext()
		if err != nil {
			logger.Error("probe failed", slog.Any("error", err))
			os.Exit(1)
		}
		if status == blkid.Exhausted {
			break
		}

		found = true
		printTags(session)

		if !*allMatches {
			break
		}
	}

	if !found {
		fmt.Fprintln(os.Stderr, "go-blkid: no match")
		os.Exit(1)
	}
}

func printTags(s *blkid.Session) {
	for i := 0; i < s.NumValues(); i++ {
		entry, ok := s.Value(i)
		if !ok {
			continue
		}
		fmt.Printf("%s=%q\n", entry.Name, string(entry.Value))
	}
}

// applyConfig wires a parsed YAML policy into the session's filter and
// probe-request mask, mirroring the request/usage/name vocabulary spec.md
// §3–§4.3 defines.
func applyConfig(s *blkid.Session, cfg *config.Config) error {
	if len(cfg.Request.Tags) > 0 {
		var mask blkid.ProbeRequest
		for _, t := range cfg.Request.Tags {
			mask |= tagRequestBit(t)
		}
		s.SetRequest(mask)
	}

	if cfg.Filter.Mode == config.FilterModeNone {
		return nil
	}

	mode := blkid.FilterOnlyIn
	if cfg.Filter.Mode == config.FilterModeNotIn {
		mode = blkid.FilterNotIn
	}

	if len(cfg.Filter.Names) > 0 {
		if err := s.FilterByName(mode, cfg.Filter.Names); err != nil {
			return err
		}
	}
	if len(cfg.Filter.Usages) > 0 {
		var usageMask blkid.UsageClass
		for _, u := range cfg.Filter.Usages {
			usageMask |= usageClassBit(u)
		}
		if err := s.FilterByUsage(mode, usageMask); err != nil {
			return err
		}
	}
	if cfg.Filter.Invert {
		if err := s.InvertFilter(); err != nil {
			return err
		}
	}
	return nil
}

func tagRequestBit(name string) blkid.ProbeRequest {
	switch strings.ToLower(name) {
	case "type":
		return blkid.ReqType
	case "usage":
		return blkid.ReqUsage
	case "label":
		return blkid.ReqLabel
	case "label_raw":
		return blkid.ReqLabelRaw
	case "uuid":
		return blkid.ReqUUID
	case "uuid_raw":
		return blkid.ReqUUIDRaw
	case "version":
		return blkid.ReqVersion
	default:
		return 0
	}
}

func usageClassBit(name string) blkid.UsageClass {
	switch strings.ToLower(name) {
	case "filesystem":
		return blkid.UsageFilesystem
	case "raid":
		return blkid.UsageRAID
	case "crypto":
		return blkid.UsageCrypto
	case "other":
		return blkid.UsageOther
	default:
		return 0
	}
}

// newLogger constructs a *slog.Logger writing JSON-structured records to
// stderr at the requested minimum level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
