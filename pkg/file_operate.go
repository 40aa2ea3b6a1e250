package pkg

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInputNotExist is returned by OpenInput for a missing input file.
var ErrInputNotExist = errors.New("input file does not exist")

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// OpenInput 打开输入文件；路径为空或为 "-" 时读取 stdin
func OpenInput(filePath string, stdin io.Reader) (io.ReadCloser, error) {
	if filePath == "" || filePath == "-" {
		return io.NopCloser(stdin), nil
	}
	exist, err := CheckFileExist(filePath)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, fmt.Errorf("%w: %s", ErrInputNotExist, filePath)
	}
	return os.Open(filePath)
}

// CreateOutput 创建输出文件；路径为空或为 "-" 时写入 stdout，Close 不会关闭 stdout
func CreateOutput(filePath string, stdout io.Writer) (io.WriteCloser, error) {
	if filePath == "" || filePath == "-" {
		return nopWriteCloser{stdout}, nil
	}
	return os.Create(filePath)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
