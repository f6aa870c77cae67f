package dto

import "fmt"

// ObjectLocation names the stored raw message a pipeline run works on.
type ObjectLocation struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func (l ObjectLocation) String() string {
	return fmt.Sprintf("s3://%s/%s", l.Bucket, l.Key)
}
