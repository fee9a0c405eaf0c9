package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI는 S3Uploader가 사용하는 S3 클라이언트 메서드입니다
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader는 출력 파일을 S3에 업로드합니다
type S3Uploader struct {
	client PutObjectAPI
	bucket string
}

// NewS3Uploader는 기본 AWS 자격 증명 체인으로 업로더를 생성합니다
func NewS3Uploader(ctx context.Context, bucket string) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("AWS 설정 로드 실패: %w", err)
	}
	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg), bucket), nil
}

// NewS3UploaderWithClient는 주어진 클라이언트로 업로더를 생성합니다
func NewS3UploaderWithClient(client PutObjectAPI, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// UploadFile은 로컬 파일을 key 위치에 업로드합니다
func (u *S3Uploader) UploadFile(ctx context.Context, key, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("업로드할 파일 읽기 실패: %w", err)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("S3 업로드 실패 (s3://%s/%s): %w", u.bucket, key, err)
	}
	return nil
}
