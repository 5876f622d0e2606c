package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ositopolar/fleet-console/internal/domain"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Client archives temperature reports in one bucket.
type S3Client struct {
	svc     s3API
	presign presignAPI
	bucket  string
}

func NewS3Client(ctx context.Context, region, bucket string) (*S3Client, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	svc := s3.NewFromConfig(cfg)
	return &S3Client{svc: svc, presign: s3.NewPresignClient(svc), bucket: bucket}, nil
}

const reportPrefix = "reports/daily/"

// DailyReportKey is the object key of the report for day.
func DailyReportKey(day time.Time) string {
	return reportPrefix + day.UTC().Format("2006-01-02") + ".json"
}

type dailyReport struct {
	Date        string                           `json:"date"`
	GeneratedAt string                           `json:"generatedAt"`
	Averages    []domain.DailyTemperatureAverage `json:"averages"`
}

// UploadDailyReport stores the averages of day as JSON and returns a
// download URL valid for one hour.
func (c *S3Client) UploadDailyReport(ctx context.Context, day time.Time, averages []domain.DailyTemperatureAverage) (string, error) {
	data, err := json.Marshal(dailyReport{
		Date:        day.UTC().Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Averages:    averages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := DailyReportKey(day)
	_, err = c.svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"uploaded-at": time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	presigned, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presigned.URL, nil
}

// ListReports returns the keys of every archived daily report.
func (c *S3Client) ListReports(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(c.svc, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(reportPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
