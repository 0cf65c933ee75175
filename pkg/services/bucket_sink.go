package services

import (
	"context"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

const htmlContentType = "text/html; charset=utf-8"

// BucketSink uploads generated pages to a Cloud Storage bucket.
// Pictures are not uploaded; pages keep referencing them by local path.
//
// A BucketSink lives for a single publish run and holds that run's context,
// since Sink methods are shared with local sinks that take none.
type BucketSink struct {
	ctx    context.Context
	bucket *storage.BucketHandle
	mapper Mapper
	prefix string
}

// NewBucketSink creates a BucketSink storing pages under prefix
func NewBucketSink(ctx context.Context, bucket *storage.BucketHandle, mapper Mapper, prefix string) *BucketSink {
	return &BucketSink{
		ctx:    ctx,
		bucket: bucket,
		mapper: mapper,
		prefix: prefix,
	}
}

// EnsureDir is a no-op; buckets have no directories
func (s *BucketSink) EnsureDir(string) error {
	return nil
}

func (s *BucketSink) WriteFile(destPath string, data []byte) error {
	rel, err := s.mapper.RelativePath(destPath)
	if err != nil {
		return err
	}
	key := objectKey(s.prefix, rel)
	if err := s.ctx.Err(); err != nil {
		return errors.Wrapf(err, "upload %s", key)
	}

	writer := s.bucket.Object(key).NewWriter(s.ctx)
	writer.ContentType = htmlContentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return errors.Wrapf(err, "upload %s", key)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "finish upload %s", key)
	}
	return nil
}

// objectKey turns a destination-relative path into a slash separated object name
func objectKey(prefix, rel string) string {
	return path.Join(prefix, filepath.ToSlash(rel))
}

// PublishedObject describes a page stored in the bucket
type PublishedObject struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ListPublished returns the pages stored under prefix
func ListPublished(ctx context.Context, bucket *storage.BucketHandle, prefix string) ([]PublishedObject, error) {
	query := &storage.Query{Prefix: strings.TrimSuffix(prefix, "/") + "/"}

	var objects []PublishedObject
	it := bucket.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate objects")
		}
		objects = append(objects, PublishedObject{Name: attrs.Name, Size: attrs.Size})
	}

	sortObjects(objects)
	return objects, nil
}

func sortObjects(objects []PublishedObject) {
	sort.Slice(objects, func(i, j int) bool {
		return naturalLess(objects[i].Name, objects[j].Name)
	})
}
