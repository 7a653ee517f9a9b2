package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/speedata/optionparser"

	"img2pdf/config"
	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/files_manager"
	"img2pdf/image_list"
	"img2pdf/logger"
	"img2pdf/storage"
	"img2pdf/utils"
)

type InputFlags = contracts.InputFlags

func run() error {
	cfg := config.Load()

	var (
		output   = cfg.Conversion.Output
		pageSize = cfg.Conversion.PageSize
		writer   = cfg.Conversion.Writer
		quality  = strconv.FormatFloat(cfg.Conversion.Quality, 'f', -1, 64)
		compress = cfg.Conversion.Compress
		verify   = cfg.Conversion.Verify
		remove   string
		moves    string
		logLevel = cfg.Logging.Level
	)

	op := optionparser.NewOptionParser()
	op.Banner = "img2pdf - combine PNG, JPG and WEBP images into one PDF\n\nUsage: img2pdf [options] convert|inspect FILE|DIR..."
	op.On("--output FILE", "Output PDF path or s3://bucket/key", &output)
	op.On("--page-size SIZE", "Page size: a4, letter or fit", &pageSize)
	op.On("--compress", "Re-encode every image as JPEG", &compress)
	op.On("--quality Q", "JPEG quality between 0 and 1", &quality)
	op.On("--writer NAME", "PDF writer: gofpdf or stream", &writer)
	op.On("--verify", "Validate the generated PDF before saving", &verify)
	op.On("--remove LIST", "Comma separated indexes to drop, e.g. 0,3", &remove)
	op.On("--move LIST", "Comma separated from:to moves, e.g. 2:0,1:3", &moves)
	op.On("--log-level LEVEL", "Log level: debug, info, warn, error", &logLevel)
	op.Command("convert", "Convert the images into a single PDF")
	op.Command("inspect", "Print what would be converted")
	if err := op.Parse(); err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level:      logLevel,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		return err
	}

	if len(op.Extra) < 2 {
		op.Help()
		return nil
	}

	q, err := strconv.ParseFloat(quality, 64)
	if err != nil {
		return fmt.Errorf("%w: quality %q is not a number", contracts.ErrInvalidSettings, quality)
	}
	removeIdx, err := parseIndexList(remove)
	if err != nil {
		return err
	}
	moveList, err := parseMoves(moves)
	if err != nil {
		return err
	}

	args := InputFlags{
		Inputs:   op.Extra[1:],
		Output:   output,
		PageSize: pageSize,
		Writer:   writer,
		Quality:  q,
		Compress: compress,
		Verify:   verify,
		Remove:   removeIdx,
		Moves:    moveList,
	}

	switch op.Extra[0] {
	case "convert":
		return convert(args, cfg.S3)
	case "inspect":
		return inspect(args)
	}
	op.Help()
	return fmt.Errorf("unknown command %q", op.Extra[0])
}

func buildList(args InputFlags) (*image_list.List, error) {
	files, err := files_manager.CollectImages(args.Inputs)
	if err != nil {
		return nil, err
	}

	list := image_list.New()
	rejected, err := list.AppendImages(files)
	if err != nil {
		return nil, err
	}
	if len(rejected) > 0 {
		names := make([]string, len(rejected))
		for i, r := range rejected {
			names[i] = r.Name
		}
		log.Warn().Strs("rejected", names).Msg("some files were skipped: only PNG, JPG and WEBP are supported")
	}

	if err := applyEdits(list, args.Remove, args.Moves); err != nil {
		return nil, err
	}
	return list, nil
}

// applyEdits removes first, highest index first, then applies moves in order.
func applyEdits(list *image_list.List, remove []int, moves [][2]int) error {
	sorted := append([]int(nil), remove...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for i, idx := range sorted {
		if i > 0 && sorted[i-1] == idx {
			continue
		}
		if err := list.RemoveImage(idx); err != nil {
			return fmt.Errorf("remove %d: %w", idx, err)
		}
	}
	for _, m := range moves {
		if err := list.MoveImage(m[0], m[1]); err != nil {
			return fmt.Errorf("move %d:%d: %w", m[0], m[1], err)
		}
	}
	return nil
}

func convert(args InputFlags, s3cfg config.S3Config) error {
	settings, err := config.Settings(args)
	if err != nil {
		return err
	}
	target, err := storage.ParseTarget(args.Output)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrInvalidSettings, err)
	}

	list, err := buildList(args)
	if err != nil {
		return err
	}

	startTime := time.Now()
	doc, err := converter.New().Convert(list.Items(), settings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	sink, err := storage.NewSink(ctx, target, storage.S3Options{
		Region:          s3cfg.Region,
		Endpoint:        s3cfg.Endpoint,
		AccessKeyID:     s3cfg.AccessKeyID,
		SecretAccessKey: s3cfg.SecretAccessKey,
	})
	if err != nil {
		return err
	}
	location, err := sink.Save(ctx, doc.Data)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", doc.RunID).
		Str("output", location).
		Int("pages", len(doc.Pages)).
		Str("size", utils.FormatFileSize(int64(len(doc.Data)))).
		Dur("took", time.Since(startTime)).
		Msg("PDF written")
	fmt.Println(location)
	return nil
}

func inspect(args InputFlags) error {
	settings, err := config.Settings(args)
	if err != nil {
		return err
	}
	list, err := buildList(args)
	if err != nil {
		return err
	}

	for i, img := range list.Items() {
		line := fmt.Sprintf("%3d  %-30s %-11s %10s", i, img.Name, img.MIMEType, utils.FormatFileSize(img.Size))
		props, err := converter.DecodeProperties(img.Content)
		if err != nil {
			fmt.Printf("%s  unreadable: %v\n", line, err)
			continue
		}
		dpi, _ := utils.GetImageDPI(img.Content, img.MIMEType)
		placement, err := converter.ComputePlacement(props.Width, props.Height, settings.Policy)
		if err != nil {
			fmt.Printf("%s  %dx%d px  %v\n", line, props.Width, props.Height, err)
			continue
		}
		fmt.Printf("%s  %dx%d px  %.0f dpi  page %.1fx%.1f mm %s\n",
			line, props.Width, props.Height, dpi,
			placement.PageWidthMm, placement.PageHeightMm, placement.Orientation())
	}
	return nil
}

func parseIndexList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q", contracts.ErrInvalidSettings, part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseMoves(s string) ([][2]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out [][2]int
	for _, part := range strings.Split(s, ",") {
		from, to, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("%w: bad move %q, want from:to", contracts.ErrInvalidSettings, part)
		}
		f, err1 := strconv.Atoi(from)
		t, err2 := strconv.Atoi(to)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bad move %q, want from:to", contracts.ErrInvalidSettings, part)
		}
		out = append(out, [2]int{f, t})
	}
	return out, nil
}

func main() {
	if err := run(); err != nil {
		var ie *contracts.ImageError
		if errors.As(err, &ie) {
			log.Error().Int("index", ie.Index).Str("name", ie.Name).Err(ie.Err).Msg("conversion failed")
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
