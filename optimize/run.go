package optimize

import (
	"context"
	"path"

	"github.com/put0/imgshrink/config"
	"github.com/put0/imgshrink/util"
)

// Run converts every qualifying file under cfg.Root, one at a time,
// printing a line per file and a summary at the end.
// Per-file failures are reported and never stop the run. An unreadable
// root is returned as an error before any file is touched.
// If ctx is cancelled the walk stops between files, the summary of what
// was done so far is printed, and the context error is returned.
func Run(ctx context.Context, cfg *config.Config, enc Encoder) (Summary, error) {
	var summary Summary

	filter, err := NewFilter(cfg.Extensions, cfg.Exclude)
	if err != nil {
		return summary, err
	}
	conv := &Converter{Encoder: enc}

	util.Printf(ctx, "Scanning directory: %s\n", cfg.Root)

	err = util.WalkFiles(ctx, cfg.Root, func(fp, rel string) error {
		if !filter.Qualifies(rel) {
			return nil
		}

		res := conv.Convert(ctx, fp)
		res.Rel = rel
		report(ctx, res)
		summary = summary.Add(res)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		return summary, err
	}

	util.Printf(ctx, "Total optimized: %d images\n", summary.Converted)
	util.Printf(ctx, "Space saved: %.2f MB\n", summary.SavedMiB())
	util.Debugf(ctx, "discarded %d, failed %d\n", summary.Discarded, summary.Failed)
	return summary, ctx.Err()
}

func report(ctx context.Context, res Result) {
	name := path.Base(res.Rel)
	switch res.Outcome {
	case Converted:
		util.Printf(ctx, "Converted: %s (%.1fKB -> %.1fKB)\n",
			name, float64(res.OriginalSize)/1024, float64(res.NewSize)/1024)
	case Discarded:
		util.Printf(ctx, "Skipped (WebP larger): %s (%d vs %d)\n",
			name, res.OriginalSize, res.NewSize)
	default:
		util.Errf(ctx, "Error converting %s: %s\n", name, res.Err)
		util.Warnf(ctx, "%s conversion of %s failed: %s", res.Err.Kind, res.Path, res.Err.Err)
	}
}
