// Package storage reads published media from S3-compatible object storage.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "lessencek-media",
//		AccessKey: key,
//		SecretKey: secret,
//		Endpoint:  "https://s3.fr-par.scw.cloud",
//		PublicURL: "https://media.lessencek.fr",
//	})
//	objects, err := store.List(ctx, "realisations/dressing/")
//	link, err := store.URL(ctx, objects[0].Key)
//
// URL returns PublicURL-based links when a public base is configured and
// presigned GET URLs otherwise. Errors wrap ErrNotFound, ErrAccessDenied,
// ErrListFailed or ErrPresignFailed.
package storage
