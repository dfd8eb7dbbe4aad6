package graphics

// Embedded GLSL sources for the rack renderer. The instanced variant
// reads the model matrix from a per-instance attribute; the single
// variant from a uniform.

const rackVertInstanced = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in mat4 aModel;

uniform mat4 proj;
uniform mat4 view;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
    vec4 world = aModel * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(aModel) * aNormal;
    gl_Position = proj * view * world;
}
`

const rackVertSingle = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
    vec4 world = model * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(model) * aNormal;
    gl_Position = proj * view * world;
}
`

const rackFrag = `#version 410 core
in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 baseColor;
uniform vec3 emissive;
uniform vec3 lightDir;
uniform vec3 camPos;
uniform float roughness;
uniform float metalness;
uniform float opacity;

out vec4 fragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 l = normalize(lightDir);
    float diff = max(dot(n, l), 0.0);

    vec3 v = normalize(camPos - vWorldPos);
    vec3 h = normalize(l + v);
    float shininess = mix(64.0, 4.0, roughness);
    float spec = pow(max(dot(n, h), 0.0), shininess) * mix(0.04, 0.9, metalness);

    vec3 color = baseColor * (0.25 + 0.75 * diff) + vec3(spec) + emissive;
    fragColor = vec4(color, opacity);
}
`
