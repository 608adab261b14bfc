package scanner

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// readText 以只读内存映射的方式读取整个文件。
// 映射失败时回退到 os.ReadFile；空文件无法映射，直接返回空串。
func readText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("read file: %s is a directory", path)
	}
	if info.Size() == 0 {
		return "", nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", fmt.Errorf("mmap failed and fallback failed: mmap error: %v, read error: %w", err, readErr)
		}
		return string(content), nil
	}

	// string() 会复制映射内容，之后即可安全解除映射。
	text := string(data)
	if err := data.Unmap(); err != nil {
		return "", fmt.Errorf("unmap file: %w", err)
	}
	return text, nil
}
