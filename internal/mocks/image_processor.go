package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/service/media"
)

// ImageProcessor is a mock type for the ImageProcessor type
type ImageProcessor struct {
	mock.Mock
}

// Process provides a mock function with given fields: r
func (m *ImageProcessor) Process(r io.Reader) (*media.ProcessedImage, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.ProcessedImage), args.Error(1)
}
