package lloyd

// AverageStore accumulates a running mean of one feature.
type AverageStore struct {
	sum   float64
	count int
}

func (s *AverageStore) Add(value float64) {
	s.sum += value
	s.count += 1
}

func (s *AverageStore) Average() float64 { return s.sum / float64(s.count) }

func (s *AverageStore) Count() int { return s.count }

