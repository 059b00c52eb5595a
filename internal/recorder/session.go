package recorder

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"VoxStudio/pkg/errors"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/google/uuid"
)

// 浏览器端采集固定为 48kHz 单声道 16bit PCM
const (
	SampleRate = 48000
	BitDepth   = 16
	Channels   = 1

	// 帧缓冲上限，超出后丢帧并报错（约数分钟的 20ms 帧）
	maxFrames = 1 << 14

	// 超过该时长没有任何帧进出的会话视为被放弃，由清扫协程回收
	sessionTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

// ErrSessionClosed 会话已保存或被回收，不再接收帧
var ErrSessionClosed = errors.New("recording session closed")

// Session 一次录音会话，独占一个有界帧缓冲
//
// 采集协程通过 Push 投递帧，保存时 Drain 按到达顺序取出。
// 关闭只置标志不关通道，保存期间仍在推帧的读循环不会崩溃。
type Session struct {
	ID     string
	frames chan []int16

	mu       sync.Mutex
	closed   bool
	lastSeen time.Time
}

// Manager 录音会话管理
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	m := &Manager{sessions: make(map[string]*Session)}
	go func() {
		for range time.Tick(sweepInterval) {
			m.sweep(sessionTTL)
		}
	}()
	return m
}

// Create 创建新会话
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		frames:   make(chan []int16, maxFrames),
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get 按ID取会话
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove 移除并关闭会话
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.close()
	}
}

// sweep 回收空闲超过 maxIdle 的会话，释放其帧缓冲
func (m *Manager) sweep(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	var stale []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			stale = append(stale, s)
		}
	}
	m.mu.Unlock()
	for _, s := range stale {
		s.close()
	}
}

// Push 投递一帧，缓冲满时丢弃并报错，会话已关闭时报错
func (s *Session) Push(frame []int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.lastSeen = time.Now()
	select {
	case s.frames <- frame:
		return nil
	default:
		return fmt.Errorf("recording buffer full, frame dropped")
	}
}

// Drain 按到达顺序取出所有帧并拼接
func (s *Session) Drain() []int16 {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()

	var samples []int16
	for {
		select {
		case frame := <-s.frames:
			samples = append(samples, frame...)
		default:
			return samples
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// DecodeFrame 把小端字节序的 PCM 帧转为样本
func DecodeFrame(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}

// WriteWAV 把样本写成中间 WAV 文件
func WriteWAV(path string, samples []int16) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, SampleRate, BitDepth, Channels, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: Channels, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
