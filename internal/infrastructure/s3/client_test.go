package s3infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", imageContentType("profiles/u1/1.jpg"))
	assert.Equal(t, "image/jpeg", imageContentType("profiles/u1/1.JPEG"))
	assert.Equal(t, "image/png", imageContentType("equipment/u1/2.png"))
	assert.Equal(t, "image/webp", imageContentType("equipment/u1/3.webp"))
	assert.Equal(t, "image/jpeg", imageContentType("equipment/u1/no-extension"))
}
