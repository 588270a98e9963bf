package renderer

// Shader sources are embedded rather than loaded from disk: the renderer
// contract (§6) is explicit that the core has no file formats of its own,
// so the GLSL a backend needs to draw a Geometry buffer ships with the
// package instead of living next to it as an asset.
//
// Each instance attribute is one quad emitted by the mesher (internal/mesher.Geometry,
// one row per Stride). Six vertices are drawn per instance with no vertex
// buffer of their own; gl_VertexID picks a corner out of the packed
// Indices field the same way the mesher chose it when triangulating.
const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 iPos;
layout (location = 1) in vec2 iSize;
layout (location = 2) in vec4 iColor;
layout (location = 3) in float iAOs;
layout (location = 4) in float iDim;
layout (location = 5) in float iDir;
layout (location = 6) in float iMask;
layout (location = 7) in float iWave;
layout (location = 8) in float iTexture;
layout (location = 9) in float iIndices;

uniform mat4 uViewProj;
uniform float uTime;

out vec4 vColor;
out vec2 vUV;
flat out int vTexture;

const vec2 kCorners[4] = vec2[4](vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(1.0, 1.0), vec2(0.0, 1.0));

void main() {
    int vid = gl_VertexID % 6;
    int packed = int(iIndices + 0.5);
    int corner = (packed >> (vid * 2)) & 3;
    vec2 uv = kCorners[corner];

    int dim = int(iDim + 0.5);
    vec3 axisU, axisV, normal;
    if (dim == 0) {
        axisU = vec3(0.0, 1.0, 0.0);
        axisV = vec3(0.0, 0.0, 1.0);
        normal = vec3(1.0, 0.0, 0.0);
    } else if (dim == 1) {
        axisU = vec3(0.0, 0.0, 1.0);
        axisV = vec3(1.0, 0.0, 0.0);
        normal = vec3(0.0, 1.0, 0.0);
    } else {
        axisU = vec3(1.0, 0.0, 0.0);
        axisV = vec3(0.0, 1.0, 0.0);
        normal = vec3(0.0, 0.0, 1.0);
    }
    normal *= iDir;

    vec3 worldPos = iPos + axisU * (uv.x * iSize.x) + axisV * (uv.y * iSize.y);

    int aoPacked = int(iAOs + 0.5);
    float ao = float((aoPacked >> (corner * 2)) & 3) / 3.0;
    float wobble = sin(uTime * 2.0 + worldPos.x * 0.3 + worldPos.z * 0.3) * iWave;
    worldPos.y += wobble;

    vColor = vec4(iColor.rgb * (0.35 + 0.65 * ao), iColor.a);
    vUV = uv * iSize;
    vTexture = int(iTexture + 0.5);

    gl_Position = uViewProj * vec4(worldPos, 1.0);
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core

in vec4 vColor;
in vec2 vUV;
flat in int vTexture;

out vec4 fragColor;

uniform sampler2DArray uTextures;

void main() {
    vec4 texel = vec4(1.0);
    if (vTexture > 0) {
        texel = texture(uTextures, vec3(fract(vUV), float(vTexture - 1)));
    }
    fragColor = texel * vColor;
    if (fragColor.a < 0.01) {
        discard;
    }
}
` + "\x00"
