package validate

type Bucket string

const (
	Weak     Bucket = "weak"
	Moderate Bucket = "moderate"
	Strong   Bucket = "strong"
)

const (
	passwordMinLen = 8
	pointsPerCheck = 20
)

// Strength - результат оценки пароля и подтверждения.
type Strength struct {
	Score             int
	Bucket            Bucket
	Mismatch          bool
	StrongAndMatching bool
}

type passwordChecks struct {
	nonEmpty, long, upper, digit, special bool
}

func checkPassword(p string) passwordChecks {
	c := passwordChecks{
		nonEmpty: p != "",
		long:     textLength(p) >= passwordMinLen,
	}
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= '0' && r <= '9':
			c.digit = true
		case !(r >= 'a' && r <= 'z'):
			c.special = true
		}
	}
	return c
}

func (c passwordChecks) score() int {
	s := 0
	for _, ok := range []bool{c.nonEmpty, c.long, c.upper, c.digit, c.special} {
		if ok {
			s += pointsPerCheck
		}
	}
	return s
}

func BucketOf(score int) Bucket {
	switch {
	case score <= 40:
		return Weak
	case score <= 80:
		return Moderate
	}
	return Strong
}

func PasswordStrength(password, confirm string) Strength {
	score := checkPassword(password).score()
	s := Strength{Score: score, Bucket: BucketOf(score)}
	if password != "" && confirm != "" {
		s.Mismatch = password != confirm
		s.StrongAndMatching = !s.Mismatch && s.Bucket == Strong
	}
	return s
}

// PasswordAcceptable - условие отправки формы регистрации и сброса пароля.
func PasswordAcceptable(password, confirm string) bool {
	c := checkPassword(password)
	return c.long && c.upper && c.digit && c.special && password == confirm
}
