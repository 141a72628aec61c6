package iofs_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iofs"
	"github.com/gnames/occdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{
			name: "create dir",
			err:  iofs.CreateDirError("/nope", cause),
			code: errcode.CreateDirError,
		},
		{
			name: "copy file",
			err:  iofs.CopyFileError("/nope/config.yaml", cause),
			code: errcode.CopyFileError,
		},
		{
			name: "read file",
			err:  iofs.ReadFileError("/nope/config.yaml", cause),
			code: errcode.ReadFileError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}
}
