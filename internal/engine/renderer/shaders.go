package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	gl_Position = uViewProj * world;
}
`

const meshFragmentShader = `
#version 410 core

#define MAX_POINT_LIGHTS 4

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec4 uBaseColor;
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform vec3 uAmbient;
uniform vec3 uEye;
uniform int uWireframe;

uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 v = normalize(uEye - vWorldPos);

	vec3 light = uAmbient;
	float diff = max(dot(n, uSunDir), 0.0);
	float spec = pow(max(dot(n, normalize(uSunDir + v)), 0.0), 32.0);
	light += uSunColor * (diff + 0.25 * spec);

	for (int i = 0; i < uPointLightCount; i++) {
		vec3 toLight = uPointLightPositions[i] - vWorldPos;
		float dist = length(toLight);
		float atten = clamp(1.0 - dist / uPointLightRanges[i], 0.0, 1.0);
		light += uPointLightColors[i] * max(dot(n, toLight / dist), 0.0) * atten * atten;
	}

	vec3 color = uBaseColor.rgb * light;
	if (uWireframe == 1) {
		color = mix(color, vec3(1.0), 0.35);
	}
	FragColor = vec4(color, uBaseColor.a);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`
