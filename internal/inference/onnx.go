package inference

import (
	"fmt"
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"
)

var ortInit sync.Once

// ONNXLoader materializes ONNX artifacts. The runtime environment is
// initialized once per process.
type ONNXLoader struct{}

// NewONNXLoader creates an ONNX artifact loader.
func NewONNXLoader() *ONNXLoader {
	return &ONNXLoader{}
}

// Load opens a session with default options.
func (l *ONNXLoader) Load(path string) (Predictor, error) {
	return l.load(path, false)
}

// LoadFallback opens a session with graph optimizations disabled, which
// tolerates graphs the optimizer chokes on.
func (l *ONNXLoader) LoadFallback(path string) (Predictor, error) {
	return l.load(path, true)
}

func (l *ONNXLoader) load(path string, disableOptimizations bool) (Predictor, error) {
	var initErr error
	ortInit.Do(func() {
		initErr = onnxruntime.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", initErr)
	}

	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer options.Destroy()

	if disableOptimizations {
		if err := options.SetGraphOptimizationLevel(onnxruntime.GraphOptimizationLevelDisableAll); err != nil {
			return nil, fmt.Errorf("disable graph optimizations: %w", err)
		}
	}

	session, err := onnxruntime.NewDynamicAdvancedSession(path,
		[]string{"input"}, []string{"output"}, options)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	return &onnxModel{session: session}, nil
}

// onnxModel wraps an ONNX session as a Predictor. Session.Run is safe for
// concurrent calls.
type onnxModel struct {
	session *onnxruntime.DynamicAdvancedSession
}

func (m *onnxModel) Predict(features []float32) (float32, error) {
	inputShape := onnxruntime.NewShape(1, int64(len(features)))
	inputTensor, err := onnxruntime.NewTensor(inputShape, features)
	if err != nil {
		return 0, fmt.Errorf("input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	output := make([]float32, 1)
	outputShape := onnxruntime.NewShape(1, 1)
	outputTensor, err := onnxruntime.NewTensor(outputShape, output)
	if err != nil {
		return 0, fmt.Errorf("output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	err = m.session.Run(
		[]onnxruntime.Value{inputTensor},
		[]onnxruntime.Value{outputTensor},
	)
	if err != nil {
		return 0, fmt.Errorf("inference: %w", err)
	}

	return output[0], nil
}

// Destroy releases the underlying session.
func (m *onnxModel) Destroy() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
