package matching

const (
	affinitySame      = 5.0
	affinityNeutral   = 3.0
	affinityChallenge = 0.0
	affinityUnlisted  = 1.0
	// affinityUnknown applies when either life path number is 0.
	affinityUnknown = 1.0
)

type chartRow struct {
	same      []int
	neutral   []int
	challenge []int
}

// affinity is indexed by [a][b]. Row and column 0 are unused.
var affinity = buildAffinity([9]chartRow{
	{same: []int{1, 2, 5}, neutral: []int{3, 7, 8, 9}, challenge: []int{4, 6}},
	{same: []int{1, 2, 4, 6, 8}, neutral: []int{3, 9}, challenge: []int{5, 7}},
	{same: []int{3, 6, 9}, neutral: []int{1, 2, 5}, challenge: []int{4, 7, 8}},
	{same: []int{2, 4, 8}, neutral: []int{6, 7}, challenge: []int{1, 3, 5, 9}},
	{same: []int{1, 5, 7}, neutral: []int{3, 8, 9}, challenge: []int{2, 4, 6}},
	{same: []int{3, 6, 9}, neutral: []int{2, 4, 8}, challenge: []int{1, 5, 7}},
	{same: []int{4, 5, 7}, neutral: []int{1, 9}, challenge: []int{2, 3, 6, 8}},
	{same: []int{2, 4, 8}, neutral: []int{1, 5, 6}, challenge: []int{3, 7, 9}},
	{same: []int{3, 6, 9}, neutral: []int{1, 2, 5, 7}, challenge: []int{4, 8}},
})

func buildAffinity(chart [9]chartRow) [10][10]float64 {
	var table [10][10]float64
	for a := range table {
		for b := range table[a] {
			table[a][b] = affinityUnlisted
		}
	}
	for i, row := range chart {
		a := i + 1
		for _, b := range row.same {
			table[a][b] = affinitySame
		}
		for _, b := range row.neutral {
			table[a][b] = affinityNeutral
		}
		for _, b := range row.challenge {
			table[a][b] = affinityChallenge
		}
	}
	return table
}

// LifePathNumber sums the decimal digits of dob and reduces the sum digit by
// digit until it is at most 9. Master numbers are reduced too. It returns 0
// when dob has no digits.
func LifePathNumber(dob string) int {
	total := 0
	for _, r := range dob {
		if r >= '0' && r <= '9' {
			total += int(r - '0')
		}
	}
	for total > 9 {
		total = digitSum(total)
	}
	return total
}

func digitSum(n int) int {
	sum := 0
	for ; n > 0; n /= 10 {
		sum += n % 10
	}
	return sum
}

// NumerologyAffinity scores b against the chart row of a, on a 0 to 5 scale.
func NumerologyAffinity(a, b int) float64 {
	if a == 0 || b == 0 {
		return affinityUnknown
	}
	if a < 1 || a > 9 || b < 1 || b > 9 {
		return affinityUnlisted
	}
	return affinity[a][b]
}
