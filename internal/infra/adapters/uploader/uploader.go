// uploader publishes generated feeds to an S3 bucket using the AWS v1
// SDK and diffs a feed against its published version.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/mkfeed/internal/app/humanreadable"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/textdiff"
)

var (
	ErrNilPointerRequest error = errors.New("received nil pointer as request")
	ErrFilenameMissing   error = errors.New("empty or missing filename given")
	ErrNoBucket          error = errors.New("no bucket configured")
)

type forUploading struct {
	session *session.Session
	stdout  io.Writer
}

// New returns an S3 uploader using the profile and region of cfg.
// Credentials are resolved on first use.
func New(cfg model.AwsConfig) ports.ForUploading {
	s := session.Must(session.NewSessionWithOptions(session.Options{
		Profile: cfg.Profile,
		Config: aws.Config{
			Region: aws.String(cfg.Region),
		},
	}))
	return &forUploading{
		session: s,
		stdout:  os.Stdout,
	}
}

// Key returns the object key of a feed file under prefix.
func Key(prefix, feedFile string) string {
	return strings.TrimPrefix(path.Join(prefix, path.Base(feedFile)), "/")
}

func getContentType(filename string) (string, error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return mimeType.String(), nil
}

// Upload r.From as key r.To to bucket r.Store. If ContentType is empty
// in r, it is detected from the content of r.From.
func (u *forUploading) Upload(ctx context.Context, r *ports.ForUploadingRequest) error {
	l := logger.FromContext(ctx)
	if err := validate(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.ContentType) == "" {
		var err error
		r.ContentType, err = getContentType(r.From)
		if err != nil {
			return err
		}
	}
	s3path := "s3://" + path.Join(r.Store, r.To)
	fi, err := os.Stat(r.From)
	if err != nil {
		return err
	}
	l.Info("Uploading to S3", "file", r.From, "to", s3path, "contentType", r.ContentType, "storageClass", r.StorageClass, "size", fi.Size(), "humanSize", humanreadable.IEC(fi.Size()))
	f, err := os.Open(r.From)
	if err != nil {
		return err
	}
	defer f.Close()
	uploader := s3manager.NewUploader(u.session)
	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Store),
		Key:          aws.String(r.To),
		ContentType:  aws.String(r.ContentType),
		Body:         f,
		StorageClass: aws.String(r.StorageClass),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s to %s: %w", r.From, s3path, err)
	}
	l.Info("Upload succeeded", "location", result.Location)
	return nil
}

// validate checks r and fills in the defaults of To and StorageClass.
func validate(r *ports.ForUploadingRequest) error {
	if r == nil {
		return ErrNilPointerRequest
	}
	if strings.TrimSpace(r.From) == "" {
		return ErrFilenameMissing
	}
	if strings.TrimSpace(r.Store) == "" {
		return ErrNoBucket
	}
	if strings.TrimSpace(r.To) == "" {
		r.To = r.From
	}
	if r.StorageClass == "" {
		r.StorageClass = "STANDARD"
	}
	return nil
}

// Diff fileToDiff by downloading the object from the bucket and
// printing a unified diff against the content of fileToDiff to stdout.
func (u *forUploading) Diff(ctx context.Context, bucket, key, fileToDiff string) error {
	l := logger.FromContext(ctx)
	if strings.TrimSpace(bucket) == "" {
		return ErrNoBucket
	}
	fileContent, err := os.ReadFile(fileToDiff)
	if err != nil {
		return err
	}
	s3path := "s3://" + path.Join(bucket, key)
	downloader := s3manager.NewDownloader(u.session)
	buf := aws.NewWriteAtBuffer([]byte{})
	size, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case "NotFound", "NoSuchKey":
				return fmt.Errorf("%s: %w", s3path, ports.ErrNotFound)
			}
		}
		return err
	}
	l.Debug("Buffered successfully", "path", s3path, "bytes", size)
	diff := textdiff.Unified(s3path, fileToDiff, string(buf.Bytes()), string(fileContent))
	if diff == "" {
		l.Info("Published feed is up to date", "file", fileToDiff, "path", s3path)
		return nil
	}
	l.Info("Diff follows", "to", fileToDiff, "from", s3path)
	fmt.Fprintln(u.stdout, diff)
	return nil
}
