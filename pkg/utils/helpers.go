package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// CalculateMD5 computes the MD5 hash of a byte slice.
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// HasExtension 判断文件名是否以指定扩展名结尾，区分大小写
// ext 需要包含前导点，例如 ".pdf"
func HasExtension(filename, ext string) bool {
	return strings.HasSuffix(filename, ext)
}
