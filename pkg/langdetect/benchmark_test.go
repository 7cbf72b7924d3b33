package langdetect

import (
	"testing"
)

func BenchmarkClassifyGo(b *testing.B) {
	code := []byte(`package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}`)
	b.ResetTimer()
	for range b.N {
		Classify(code)
	}
}

func BenchmarkClassifyPython(b *testing.B) {
	code := []byte(`def hello():
    print("Hello, World!")

if __name__ == "__main__":
    hello()`)
	b.ResetTimer()
	for range b.N {
		Classify(code)
	}
}

func BenchmarkClassifyProse(b *testing.B) {
	code := []byte("plain sentences without any code shape at all")
	b.ResetTimer()
	for range b.N {
		Classify(code)
	}
}

func BenchmarkCanonical(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		Canonical("golang")
	}
}
