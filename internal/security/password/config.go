package password

import (
	"fmt"
	"runtime"

	"github.com/vedran77/messagely/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// DefaultBcryptCost matches the work factor used in production deployments.
const DefaultBcryptCost = 12

// Argon2idParams controls Argon2id hashing cost.
// MemoryKiB is in KiB as required by argon2.IDKey.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

type Config struct {
	Algorithm  string
	BcryptCost int
	Argon2id   Argon2idParams
}

func DefaultConfig() Config {
	threads := runtime.NumCPU()
	if threads <= 0 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}

	return Config{
		Algorithm:  AlgorithmBcrypt,
		BcryptCost: DefaultBcryptCost,
		Argon2id: Argon2idParams{
			MemoryKiB:   64 * 1024,
			Iterations:  3,
			Parallelism: uint8(threads), // #nosec G115 -- clamped to [1..4] above.
			SaltLength:  16,
			KeyLength:   32,
		},
	}
}

// Validate reports domain.ErrConfiguration for unusable settings.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			return fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]",
				domain.ErrConfiguration, c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	case AlgorithmArgon2id:
		p := c.Argon2id
		if p.MemoryKiB < 8*uint32(p.Parallelism) || p.Iterations == 0 || p.Parallelism == 0 {
			return fmt.Errorf("%w: argon2id parameters m=%d t=%d p=%d",
				domain.ErrConfiguration, p.MemoryKiB, p.Iterations, p.Parallelism)
		}
		if p.SaltLength < 8 || p.KeyLength < 16 {
			return fmt.Errorf("%w: argon2id salt/key length too short", domain.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown password algorithm %q", domain.ErrConfiguration, c.Algorithm)
	}
	return nil
}
