package blaster

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sync"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type AssetId string

type TextureAsset struct {
	Path   string
	Texels []uint8 // RGBA8, row-major, no padding
	Width  uint32
	Height uint32
}

// AssetServer is the texture registry. Paths map to stable handles: loading
// the same path twice returns the first handle without touching the file.
type AssetServer struct {
	mu       sync.RWMutex
	byPath   map[string]AssetId
	textures map[AssetId]TextureAsset
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		byPath:   make(map[string]AssetId),
		textures: make(map[AssetId]TextureAsset),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

// LoadTexture decodes a PNG, BMP or WebP file and registers it under path.
func (server *AssetServer) LoadTexture(path string) error {
	server.mu.RLock()
	_, ok := server.byPath[path]
	server.mu.RUnlock()
	if ok {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return fmt.Errorf("load texture %s: %w", path, ErrUnsupportedImage)
		}
		return fmt.Errorf("load texture %s: %w", path, err)
	}

	server.CreateTexture(path, toRGBA(img))
	return nil
}

// CreateTexture registers already decoded texels under path, replacing any
// texture previously registered there but keeping its handle.
func (server *AssetServer) CreateTexture(path string, img *image.RGBA) AssetId {
	server.mu.Lock()
	defer server.mu.Unlock()

	id, ok := server.byPath[path]
	if !ok {
		id = makeAssetId()
		server.byPath[path] = id
	}
	bounds := img.Bounds()
	server.textures[id] = TextureAsset{
		Path:   path,
		Texels: img.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	return id
}

func (server *AssetServer) TextureHandle(path string) (core.TextureHandle, error) {
	server.mu.RLock()
	defer server.mu.RUnlock()
	id, ok := server.byPath[path]
	if !ok {
		return "", fmt.Errorf("texture %s: %w", path, ErrTextureNotLoaded)
	}
	return core.TextureHandle(id), nil
}

func (server *AssetServer) Texture(handle core.TextureHandle) (TextureAsset, bool) {
	server.mu.RLock()
	defer server.mu.RUnlock()
	tex, ok := server.textures[AssetId(handle)]
	return tex, ok
}

// TextureRGBA lets the particle pass upload textures on first use.
func (server *AssetServer) TextureRGBA(handle core.TextureHandle) ([]byte, uint32, uint32, bool) {
	tex, ok := server.Texture(handle)
	if !ok {
		return nil, 0, 0, false
	}
	return tex.Texels, tex.Width, tex.Height, true
}

func (server *AssetServer) TextureCount() int {
	server.mu.RLock()
	defer server.mu.RUnlock()
	return len(server.textures)
}

// toRGBA returns img as tightly packed RGBA with its origin at 0,0.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == 4*bounds.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
