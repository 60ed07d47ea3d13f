// Package export writes rendered snapshots to their destination: standard
// output, a local file or an S3 object.
//
// A Sink is opened from a parsed config.Target:
//
//	target, err := config.ParseTarget(cfg.Export.Target)
//	sink, err := export.Open(target, cfg.Export, os.Stdout)
//	err = sink.Put(ctx, export.Snapshot{Body: page, ContentType: "text/html"})
package export
