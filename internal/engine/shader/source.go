package shader

import "strings"

// Attribute locations used by VertexSource.
const (
	AttribPosition   = 0
	AttribNormal     = 1
	AttribTileOffset = 2
	AttribColor      = 3
)

// Uniform names.
const (
	UniformMVP      = "uMVP"
	UniformTileMap  = "uTileMap"
	UniformTileSize = "uTileSize"
)

// VertexSource passes the tile offset through unchanged; every vertex of a
// face carries the same offset.
const VertexSource = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTileOffset;
layout(location = 3) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vNormal;
out vec3 vPosition;
flat out vec2 vTileOffset;
out vec3 vColor;

void main() {
    vNormal = aNormal;
    vPosition = aPosition;
    vTileOffset = aTileOffset;
    vColor = aColor;
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const fragmentBody = `
uniform sampler2D uTileMap;
uniform float uTileSize;

in vec3 vNormal;
in vec3 vPosition;
flat in vec2 vTileOffset;
in vec3 vColor;

out vec4 fragColor;

// Samples the 2x2 repeated tile four times, weighting each sample by its
// distance to the centre of the patch, so mipmaps never bleed across tiles.
vec4 fourTapSample(vec2 tileOffset, vec2 tileUV) {
    vec4 color = vec4(0.0);
    float totalWeight = 0.0;
    for (int dx = 0; dx < 2; ++dx)
    for (int dy = 0; dy < 2; ++dy) {
        vec2 tileCoord = 2.0 * fract(0.5 * (tileUV + vec2(dx, dy)));
        float w = pow(1.0 - max(abs(tileCoord.x - 1.0), abs(tileCoord.y - 1.0)), 16.0);
        vec2 atlasUV = tileOffset + uTileSize * tileCoord;
        color += w * texture(uTileMap, atlasUV);
        totalWeight += w;
    }
    return color / totalWeight;
}

void main() {
    // World position repeats [0,1) within each face.
    vec2 tileUV = vec2(dot(vNormal.zxy, vPosition), dot(vNormal.yzx, vPosition));

    if (vNormal.z < 0.0 || vNormal.y < 0.0) tileUV.t = 1.0 - tileUV.t;
    if (vNormal.x < 0.0) {
        float r = tileUV.s;
        tileUV.s = tileUV.t;
        tileUV.t = 1.0 - r;
    }
    if (vNormal.x > 0.0 || vNormal.y > 0.0) {
        float r = tileUV.s;
        tileUV.s = tileUV.t;
        tileUV.t = r;
    }
    if (vNormal.z != 0.0 || vNormal.y < 0.0) tileUV.s = 1.0 - tileUV.s;

#ifdef FOUR_TAP
    vec4 texel = fourTapSample(vTileOffset, tileUV);
#else
    vec4 texel = texture(uTileMap, vTileOffset + uTileSize * fract(tileUV));
#endif
    if (texel.a < 0.5) discard;
    fragColor = vec4(texel.rgb * vColor, texel.a);
}
`

// FragmentSource returns the atlas fragment shader. With fourTap set it
// blends four samples of the repeated tile instead of one.
func FragmentSource(fourTap bool) string {
	var b strings.Builder
	b.WriteString("#version 410 core\n")
	if fourTap {
		b.WriteString("#define FOUR_TAP\n")
	}
	b.WriteString(fragmentBody)
	return b.String()
}
