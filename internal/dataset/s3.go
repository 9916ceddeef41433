package dataset

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// S3API is the subset of the S3 client the loader needs.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader reads <prefix>/<year>.json objects from a bucket.
type S3Loader struct {
	Client S3API
	Bucket string
	Prefix string
}

// S3Config selects the bucket and AWS credentials profile.
type S3Config struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string // primarily for dev purposes
}

// NewS3Loader builds a loader with the default AWS credential chain.
func NewS3Loader(ctx context.Context, cfg S3Config) (*S3Loader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3 loader: %w", err)
	}
	return &S3Loader{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: cfg.Bucket,
		Prefix: cfg.Prefix,
	}, nil
}

func (l *S3Loader) Name() string { return "s3://" + path.Join(l.Bucket, l.Prefix) }

// Load lists the prefix and decodes every <year>.json object.
func (l *S3Loader) Load(ctx context.Context) ([]*calendar.ReferenceDataSet, error) {
	prefix := strings.Trim(l.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	var keys []string
	var token *string
	for {
		out, err := l.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(l.Bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", l.Name(), err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			base := path.Base(key)
			if strings.HasSuffix(base, TmpSuffix) || path.Ext(base) != FileSuffix {
				continue
			}
			keys = append(keys, key)
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	sort.Strings(keys)

	sets := make([]*calendar.ReferenceDataSet, 0, len(keys))
	for _, key := range keys {
		ds, err := l.get(ctx, key)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ds)
	}
	return sets, nil
}

func (l *S3Loader) get(ctx context.Context, key string) (*calendar.ReferenceDataSet, error) {
	out, err := l.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", l.Bucket, key, err)
	}
	defer out.Body.Close()

	ds, err := Decode(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", l.Bucket, key, err)
	}
	return ds, nil
}
