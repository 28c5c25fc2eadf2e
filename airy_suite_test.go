package airy_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAiry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Airy Suite")
}
