package matcher

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultMinConfidence 随机置信度下限
	DefaultMinConfidence = 0.7
	// DefaultMaxConfidence 随机置信度上限
	DefaultMaxConfidence = 1.0
)

// ConfidenceScorer 为命中的技能给出置信度
// 实现必须可重入，会被多个请求并发调用
type ConfidenceScorer interface {
	Score(skill string, context string) float64
}

// RandomScorer 在 [min, max] 区间内均匀随机取值的占位打分器
// 结果不可复现，只用于在真实模型接入前提供置信度字段
type RandomScorer struct {
	min, max float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomScorer 创建随机打分器，src 为 nil 时使用基于时间的种子
func NewRandomScorer(min, max float64, src rand.Source) *RandomScorer {
	min, max = clamp01(min), clamp01(max)
	if min > max {
		min, max = max, min
	}
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	return &RandomScorer{min: min, max: max, rnd: rand.New(src)}
}

// NewDefaultScorer 返回 [0.7, 1.0] 区间的随机打分器
func NewDefaultScorer() *RandomScorer {
	return NewRandomScorer(DefaultMinConfidence, DefaultMaxConfidence, nil)
}

// Score 实现 ConfidenceScorer
func (s *RandomScorer) Score(_ string, _ string) float64 {
	s.mu.Lock()
	f := s.rnd.Float64()
	s.mu.Unlock()
	return s.min + f*(s.max-s.min)
}

// Bounds 返回区间
func (s *RandomScorer) Bounds() (float64, float64) {
	return s.min, s.max
}

// FixedScorer 对所有技能返回同一置信度
type FixedScorer float64

// Score 实现 ConfidenceScorer
func (f FixedScorer) Score(_ string, _ string) float64 {
	return float64(f)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
