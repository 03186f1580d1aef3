package keystore

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyPair 托管密钥对
type KeyPair struct {
	PublicKey  string // 非压缩公钥，0x 前缀十六进制
	PrivateKey string // 私钥，0x 前缀十六进制
	Address    string // 由公钥推导的账户地址
}

// Generator 生成新的托管密钥对
type Generator interface {
	Generate() (KeyPair, error)
}

// Secp256k1Generator 基于 go-ethereum 的 secp256k1 密钥生成器
type Secp256k1Generator struct{}

// NewGenerator 创建密钥生成器
func NewGenerator() *Secp256k1Generator {
	return &Secp256k1Generator{}
}

// Generate 生成密钥对
func (g *Secp256k1Generator) Generate() (KeyPair, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to generate key: %w", err)
	}
	return fromECDSA(privateKey), nil
}

func fromECDSA(privateKey *ecdsa.PrivateKey) KeyPair {
	return KeyPair{
		PublicKey:  hexutil.Encode(crypto.FromECDSAPub(&privateKey.PublicKey)),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(privateKey)),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
	}
}
