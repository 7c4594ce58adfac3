package nlp

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
)

//go:embed data/english_stopwords.txt
var englishStopwordsData string

var (
	defaultTokenizer     *Tokenizer
	defaultTokenizerOnce sync.Once
)

// Normalized 归一化后的文本
type Normalized struct {
	Text   string   // 小写后的全文
	Tokens []string // 过滤后的词元序列（仅字母数字，已去除停用词，保持原顺序）
}

// Tokenizer 分词与归一化器
// 构造后只读，可在多个请求间共享
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer 使用给定的停用词集合创建分词器
func NewTokenizer(stopwords []string) *Tokenizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &Tokenizer{stopwords: set}
}

// DefaultTokenizer 返回使用内置英文停用词表的分词器（首次调用时加载）
func DefaultTokenizer() *Tokenizer {
	defaultTokenizerOnce.Do(func() {
		words, err := LoadStopwords(strings.NewReader(englishStopwordsData))
		if err != nil {
			panic(fmt.Sprintf("nlp: invalid embedded stopwords: %v", err))
		}
		defaultTokenizer = NewTokenizer(words)
	})
	return defaultTokenizer
}

// LoadStopwords 读取停用词，每行一个，忽略空行和 # 开头的注释行
func LoadStopwords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取停用词失败: %w", err)
	}
	return words, nil
}

// IsStopword 判断是否为停用词（忽略大小写）
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[strings.ToLower(word)]
	return ok
}

// StopwordCount 停用词数量
func (t *Tokenizer) StopwordCount() int {
	return len(t.stopwords)
}

// Normalize 将原始文本转为小写全文，并切分为字母数字词元，去除停用词
// 不做词干提取
func (t *Tokenizer) Normalize(text string) Normalized {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := t.stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}

	return Normalized{Text: lower, Tokens: tokens}
}
